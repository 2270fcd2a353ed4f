package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleState = `{
  "note": {
    "noteDetailMap": {
      "abc123": {
        "note": {
          "title": "  Weekend   in Kyoto ",
          "desc": "Three spots you\ncannot miss",
          "imageList": [
            {"urlDefault": "http://sns-img.example.com/1.jpg"},
            {"url": "https://sns-img.example.com/2.jpg?imageView2/2/w/300"},
            {"somethingElse": true}
          ],
          "user": {"nickname": "mei"},
          "likedCount": 42
        }
      }
    }
  }
}`

func TestParseInitialState_NoteDetailMap(t *testing.T) {
	record, err := parseInitialState(sampleState, "https://www.xiaohongshu.com/explore/abc123")
	require.NoError(t, err)

	assert.Equal(t, "Weekend in Kyoto", record.Title)
	assert.Equal(t, "Three spots you cannot miss", record.Body)
	assert.Equal(t, []string{
		"https://sns-img.example.com/1.jpg",
		"https://sns-img.example.com/2.jpg",
	}, record.MediaURLs)
	assert.Equal(t, "mei", record.Author)
	assert.Equal(t, 42, record.Likes)
	assert.False(t, record.ExtractedAt.IsZero())
}

func TestParseInitialState_TopLevelNoteDetail(t *testing.T) {
	state := `{"noteDetail": {"title": "T", "content": "B", "images": []}}`
	record, err := parseInitialState(state, "https://www.xiaohongshu.com/explore/x")
	require.NoError(t, err)
	assert.Equal(t, "T", record.Title)
	assert.Equal(t, "B", record.Body)
	assert.Empty(t, record.MediaURLs)
}

func TestParseInitialState_AnyObjectWithTitle(t *testing.T) {
	state := `{"whatever": {"title": "found me", "desc": "body"}}`
	record, err := parseInitialState(state, "u")
	require.NoError(t, err)
	assert.Equal(t, "found me", record.Title)
}

func TestParseInitialState_Invalid(t *testing.T) {
	_, err := parseInitialState("{not json", "u")
	var exErr *Error
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, KindParseFailure, exErr.Kind)

	_, err = parseInitialState(`{"nothing": "useful"}`, "u")
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, KindParseFailure, exErr.Kind)
}

const sampleHTML = `<html><body>
  <div class="interaction-container">
    <h1 class="note-title">Ramen crawl</h1>
    <div class="note-desc">First stop was tiny.</div>
    <div class="note-desc">Second stop had the best broth.</div>
  </div>
  <div class="swiper-wrapper">
    <div class="swiper-slide"><img data-src="http://sns-img.example.com/a.jpg"></div>
    <div class="swiper-slide"><img src="https://sns-img.example.com/b.jpg?imageView2/2/w/100"></div>
    <div class="swiper-slide"><img src="https://cdn.example.com/avatar/u.jpg"></div>
    <div class="swiper-slide"><img data-src="http://sns-img.example.com/a.jpg"></div>
  </div>
</body></html>`

func TestParseRenderedHTML(t *testing.T) {
	record, err := parseRenderedHTML(sampleHTML, "https://www.xiaohongshu.com/explore/r")
	require.NoError(t, err)

	assert.Equal(t, "Ramen crawl", record.Title)
	// Sibling body elements concatenate in document order.
	assert.Equal(t, "First stop was tiny.\nSecond stop had the best broth.", record.Body)
	// Avatars filtered, duplicates dropped, order preserved, https upgraded,
	// thumbnail params stripped.
	assert.Equal(t, []string{
		"https://sns-img.example.com/a.jpg",
		"https://sns-img.example.com/b.jpg",
	}, record.MediaURLs)
}

func TestParseRenderedHTML_NoMedia(t *testing.T) {
	html := `<html><body><h1 class="note-title">Text only</h1><div class="note-desc">Body</div></body></html>`
	record, err := parseRenderedHTML(html, "u")
	require.NoError(t, err)
	assert.Equal(t, "Text only", record.Title)
	assert.NotNil(t, record)
	assert.Empty(t, record.MediaURLs)
}

func TestParseRenderedHTML_EmptyPage(t *testing.T) {
	var exErr *Error
	_, err := parseRenderedHTML("", "u")
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, KindParseFailure, exErr.Kind)

	_, err = parseRenderedHTML("<html><body><p>unrelated page</p></body></html>", "u")
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, KindParseFailure, exErr.Kind)
}

func TestParseNote_PrefersInitialState(t *testing.T) {
	record, err := parseNote(sampleState, sampleHTML, "u")
	require.NoError(t, err)
	assert.Equal(t, "Weekend in Kyoto", record.Title)
}

func TestParseNote_FallsBackToHTML(t *testing.T) {
	record, err := parseNote(`{"nothing": 1}`, sampleHTML, "u")
	require.NoError(t, err)
	assert.Equal(t, "Ramen crawl", record.Title)
}

func TestNormalizeMediaURL(t *testing.T) {
	assert.Equal(t, "https://x/1.jpg", normalizeMediaURL("http://x/1.jpg"))
	assert.Equal(t, "https://x/1.jpg", normalizeMediaURL("https://x/1.jpg?imageView2/2/w/300"))
	// Unknown query params are kept; only thumbnail params are stripped.
	assert.Equal(t, "https://x/1.jpg?v=2", normalizeMediaURL("https://x/1.jpg?v=2"))
}

func TestIsNoteImage(t *testing.T) {
	assert.True(t, isNoteImage("https://sns-img.example.com/1.jpg"))
	assert.False(t, isNoteImage("https://cdn.example.com/avatar/1.jpg"))
	assert.False(t, isNoteImage("https://cdn.example.com/logo.png"))
	assert.False(t, isNoteImage("https://cdn.example.com/unrelated.bin"))
}
