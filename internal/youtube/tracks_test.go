package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func track(lang, kind string) CaptionTrack {
	return CaptionTrack{BaseURL: "https://captions.test/" + lang + kind, LanguageCode: lang, Kind: kind}
}

func TestSelectCaptionTrackManualBeatsASRAcrossPreferences(t *testing.T) {
	tracks := []CaptionTrack{
		track("es", ""),
		track("en", ""),
		track("pt", "asr"),
	}

	// "pt" is the top preference but only exists auto-generated; the
	// manual "en" still wins because every preference is tried against
	// manual tracks first.
	got, ok := selectCaptionTrack(tracks, []string{"pt", "en"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.True(t, ok)
	assert.Equal(t, "en", got.LanguageCode)
	assert.Empty(t, got.Kind)
}

func TestSelectCaptionTrackASRWhenNoManualMatches(t *testing.T) {
	tracks := []CaptionTrack{
		track("es", ""),
		track("pt", "asr"),
	}

	got, ok := selectCaptionTrack(tracks, []string{"pt"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.True(t, ok)
	assert.Equal(t, "pt", got.LanguageCode)
	assert.Equal(t, "asr", got.Kind)
}

func TestSelectCaptionTrackPrefixMatch(t *testing.T) {
	tracks := []CaptionTrack{
		track("en-US", ""),
	}

	got, ok := selectCaptionTrack(tracks, []string{"en"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.True(t, ok)
	assert.Equal(t, "en-US", got.LanguageCode)
}

func TestSelectCaptionTrackDefaultHint(t *testing.T) {
	tracks := []CaptionTrack{
		track("fr", ""),
		track("de", ""),
	}
	hints := trackHints{defaultCaptionTrackIndex: 1}

	got, ok := selectCaptionTrack(tracks, []string{"ja"}, hints)
	assert.True(t, ok)
	assert.Equal(t, "de", got.LanguageCode)
}

func TestSelectCaptionTrackTranslationSourceFallback(t *testing.T) {
	tracks := []CaptionTrack{
		track("fr", ""),
		track("de", ""),
	}
	hints := trackHints{
		defaultCaptionTrackIndex: 7, // out of range, ignored
		translationSourceIndices: []int{5, 1},
	}

	got, ok := selectCaptionTrack(tracks, nil, hints)
	assert.True(t, ok)
	assert.Equal(t, "de", got.LanguageCode)
}

func TestSelectCaptionTrackFirstManualFallback(t *testing.T) {
	tracks := []CaptionTrack{
		track("ko", "asr"),
		track("fr", ""),
	}

	got, ok := selectCaptionTrack(tracks, []string{"ja"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.True(t, ok)
	assert.Equal(t, "fr", got.LanguageCode)
}

func TestSelectCaptionTrackNoTracks(t *testing.T) {
	_, ok := selectCaptionTrack(nil, []string{"en"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.False(t, ok)
}

func TestSelectCaptionTrackSkipsEmptyURLs(t *testing.T) {
	tracks := []CaptionTrack{
		{LanguageCode: "en"}, // no URL, unusable
	}

	_, ok := selectCaptionTrack(tracks, []string{"en"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.False(t, ok)
}

func TestSelectCaptionTrackStripsSRV3Suffix(t *testing.T) {
	tracks := []CaptionTrack{
		{BaseURL: "https://captions.test/x?lang=en&fmt=srv3", LanguageCode: "en"},
	}

	got, ok := selectCaptionTrack(tracks, []string{"en"}, trackHints{defaultCaptionTrackIndex: -1})
	assert.True(t, ok)
	assert.Equal(t, "https://captions.test/x?lang=en", got.BaseURL)
}

func TestMatchesLanguage(t *testing.T) {
	assert.True(t, matchesLanguage("en", "en"))
	assert.True(t, matchesLanguage("EN", "en"))
	assert.True(t, matchesLanguage("en-GB", "en"))
	assert.False(t, matchesLanguage("es", "en"))
	assert.False(t, matchesLanguage("e", "en"))
}

func TestHintsFromRenderer(t *testing.T) {
	idx := 2

	t.Run("uses selected audio track", func(t *testing.T) {
		r := captionsRenderer{
			AudioTracks: []audioTrack{
				{},
				{DefaultCaptionTrackIndex: &idx},
			},
			DefaultAudioTrackIndex:               1,
			DefaultTranslationSourceTrackIndices: []int{0},
		}

		hints := hintsFromRenderer(r)
		assert.Equal(t, 2, hints.defaultCaptionTrackIndex)
		assert.Equal(t, []int{0}, hints.translationSourceIndices)
	})

	t.Run("out of range audio index falls back to first", func(t *testing.T) {
		r := captionsRenderer{
			AudioTracks:            []audioTrack{{DefaultCaptionTrackIndex: &idx}},
			DefaultAudioTrackIndex: 5,
		}

		assert.Equal(t, 2, hintsFromRenderer(r).defaultCaptionTrackIndex)
	})

	t.Run("absent hint is -1", func(t *testing.T) {
		r := captionsRenderer{AudioTracks: []audioTrack{{}}}

		assert.Equal(t, -1, hintsFromRenderer(r).defaultCaptionTrackIndex)
	})

	t.Run("no audio tracks", func(t *testing.T) {
		assert.Equal(t, -1, hintsFromRenderer(captionsRenderer{}).defaultCaptionTrackIndex)
	})
}
