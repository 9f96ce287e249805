package youtube

import "strings"

// srv3Suffix forces a binary-ish caption format this parser does not
// support; stripping it makes the platform serve plain XML.
const srv3Suffix = "&fmt=srv3"

// trackHints are the platform-supplied defaulting hints that steer
// selection when no language preference matches.
type trackHints struct {
	// defaultCaptionTrackIndex points into the caption track list;
	// -1 when the platform supplied none.
	defaultCaptionTrackIndex int
	// translationSourceIndices are walked in order as a further fallback.
	translationSourceIndices []int
}

// hintsFromRenderer reads the defaulting hints off the tracklist
// renderer. The caption-track default lives on the audio track selected
// by defaultAudioTrackIndex; an out-of-range index falls back to the
// first audio track.
func hintsFromRenderer(r captionsRenderer) trackHints {
	hints := trackHints{
		defaultCaptionTrackIndex: -1,
		translationSourceIndices: r.DefaultTranslationSourceTrackIndices,
	}
	if len(r.AudioTracks) == 0 {
		return hints
	}
	at := r.AudioTracks[0]
	if r.DefaultAudioTrackIndex >= 0 && r.DefaultAudioTrackIndex < len(r.AudioTracks) {
		at = r.AudioTracks[r.DefaultAudioTrackIndex]
	}
	if at.DefaultCaptionTrackIndex != nil {
		hints.defaultCaptionTrackIndex = *at.DefaultCaptionTrackIndex
	}
	return hints
}

// matchesLanguage reports whether a track's language code satisfies a
// preference, exactly or as a case-insensitive prefix ("en" matches
// "en-US").
func matchesLanguage(code, pref string) bool {
	if strings.EqualFold(code, pref) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(code), strings.ToLower(pref))
}

// selectCaptionTrack picks one track. Manual tracks are preferred over
// auto-generated ones for every preference; then the platform's default
// hints apply; then first-manual and first-asr as last resorts. The
// chosen URL has any srv3 format suffix stripped.
func selectCaptionTrack(tracks []CaptionTrack, prefs []string, hints trackHints) (CaptionTrack, bool) {
	var manual, asr []CaptionTrack
	for _, t := range tracks {
		if t.Kind == "asr" {
			asr = append(asr, t)
		} else if t.BaseURL != "" {
			manual = append(manual, t)
		}
	}

	if t, ok := scanByPreference(manual, prefs); ok {
		return stripSRV3(t), true
	}
	if t, ok := scanByPreference(asr, prefs); ok {
		return stripSRV3(t), true
	}

	if i := hints.defaultCaptionTrackIndex; i >= 0 && i < len(tracks) && tracks[i].BaseURL != "" {
		return stripSRV3(tracks[i]), true
	}
	for _, i := range hints.translationSourceIndices {
		if i >= 0 && i < len(tracks) && tracks[i].BaseURL != "" {
			return stripSRV3(tracks[i]), true
		}
	}

	if len(manual) > 0 {
		return stripSRV3(manual[0]), true
	}
	if len(asr) > 0 {
		return stripSRV3(asr[0]), true
	}
	return CaptionTrack{}, false
}

func scanByPreference(tracks []CaptionTrack, prefs []string) (CaptionTrack, bool) {
	for _, pref := range prefs {
		for _, t := range tracks {
			if matchesLanguage(t.LanguageCode, pref) {
				return t, true
			}
		}
	}
	return CaptionTrack{}, false
}

func stripSRV3(t CaptionTrack) CaptionTrack {
	t.BaseURL = strings.TrimSuffix(t.BaseURL, srv3Suffix)
	return t
}
