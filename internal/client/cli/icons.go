package cli

import "github.com/dmitrijs2005/gophdrive/internal/catalog"

// kindIcon must cover every catalog.Kind.
func kindIcon(k catalog.Kind) string {
	switch k {
	case catalog.KindImage:
		return "[img]"
	case catalog.KindDocument:
		return "[doc]"
	case catalog.KindArchive:
		return "[zip]"
	case catalog.KindAudio:
		return "[aud]"
	case catalog.KindVideo:
		return "[vid]"
	case catalog.KindOther:
		return "[---]"
	default:
		return "[---]"
	}
}
