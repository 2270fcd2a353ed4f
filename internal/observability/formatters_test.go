package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mizuha/rednote-remix/internal/types"
)

func TestPrintContentRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.ContentRecord{
		SourceURL: "https://www.xiaohongshu.com/explore/abc",
		Title:     "Weekend in Chengdu",
		Body:      "Hotpot first.\nThen the panda base.",
		Author:    "travelcat",
		Likes:     1200,
		MediaURLs: []string{
			"https://sns-img.example.com/one.jpg",
			"https://sns-img.example.com/two.jpg",
		},
	}

	p.PrintContentRecord(record)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED NOTE")
	assert.Contains(t, output, "Weekend in Chengdu")
	assert.Contains(t, output, "travelcat")
	assert.Contains(t, output, "1200")
	assert.Contains(t, output, "Media (2)")
}

func TestPrintContentRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintContentRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRewriteResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRewriteResult(&types.RewriteResult{
		Title:    "Chengdu, But Make It Cozy",
		Text:     "You have not lived until the broth hits.",
		Provider: "DeepSeek",
	})
	output := buf.String()

	assert.Contains(t, output, "REWRITTEN NOTE")
	assert.Contains(t, output, "DeepSeek")
	assert.Contains(t, output, "Chengdu, But Make It Cozy")
}

func TestPrintImageResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImageResult(&types.ImageResult{
		Provider: "Placeholder",
		Refs: []types.ImageRef{
			{URL: "https://picsum.photos/seed/a/1080/1440"},
			{Data: []byte{0x89, 0x50, 0x4e, 0x47}},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATED IMAGES")
	assert.Contains(t, output, "Placeholder")
	assert.Contains(t, output, "Images:   2")
	assert.Contains(t, output, "<inline, 4 bytes>")
}

func TestPrintImageResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImageResult(&types.ImageResult{Provider: "Placeholder"})

	assert.Empty(t, buf.String())
}
