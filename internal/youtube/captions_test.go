package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

func TestParseDialectText(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
<text start="1.5" dur="2.0">Hi &amp; bye</text>
<text start="3.52" dur="1.48">it&#39;s &quot;quoted&quot;</text>
</transcript>`

	segs := parseCaptions(doc)

	assert.Equal(t, []models.TranscriptSegment{
		{Text: "Hi & bye", StartMs: 1500, DurationMs: 2000},
		{Text: `it's "quoted"`, StartMs: 3520, DurationMs: 1480},
	}, segs)
}

func TestParseDialectPara(t *testing.T) {
	doc := `<timedtext format="3">
<body>
<p t="1500" d="2000">Hi &amp; bye</p>
<p t="3500" d="1500"><s ac="248">split</s><s> words</s></p>
</body>
</timedtext>`

	segs := parseCaptions(doc)

	assert.Equal(t, []models.TranscriptSegment{
		{Text: "Hi & bye", StartMs: 1500, DurationMs: 2000},
		{Text: "split words", StartMs: 3500, DurationMs: 1500},
	}, segs)
}

func TestParseCaptionsPrefersTextDialect(t *testing.T) {
	doc := `<text start="1.0" dur="1.0">a</text><p t="99" d="99">b</p>`

	segs := parseCaptions(doc)

	assert.Len(t, segs, 1)
	assert.Equal(t, "a", segs[0].Text)
}

func TestParseCaptionsExtraAttributes(t *testing.T) {
	doc := `<p t="0" d="1000" w="1" a="1">attributed</p>`

	segs := parseCaptions(doc)

	assert.Equal(t, []models.TranscriptSegment{
		{Text: "attributed", StartMs: 0, DurationMs: 1000},
	}, segs)
}

func TestParseCaptionsNoMatch(t *testing.T) {
	assert.Empty(t, parseCaptions("<html>not captions</html>"))
}

func TestDecodeCaptionEntities(t *testing.T) {
	assert.Equal(t, `< > & " '`, decodeCaptionEntities("&lt; &gt; &amp; &quot; &#39;"))

	// Entities outside the fixed set pass through untouched
	assert.Equal(t, "caf&eacute; &#10003;", decodeCaptionEntities("caf&eacute; &#10003;"))
}
