package constants

// Icon references a monochrome glyph shown above step text.
type Icon int

const (
	IconNone Icon = iota
	IconEye
	IconWarning
	IconCrossmark
	IconValidate
	IconWallet
	IconCertificate
)

func (i Icon) GetName() string {
	switch i {
	case IconNone:
		return "None"
	case IconEye:
		return "Eye"
	case IconWarning:
		return "Warning"
	case IconCrossmark:
		return "Crossmark"
	case IconValidate:
		return "Validate"
	case IconWallet:
		return "Wallet"
	case IconCertificate:
		return "Certificate"
	default:
		return "Unknown"
	}
}

// Glyph returns the Unicode stand-in used by text backends.
func (i Icon) Glyph() string {
	switch i {
	case IconEye:
		return "\U0001F441" // Eye
	case IconWarning:
		return "⚠" // Warning sign
	case IconCrossmark:
		return "✗" // Ballot X
	case IconValidate:
		return "✓" // Check mark
	case IconWallet:
		return "\U0001F45B" // Purse
	case IconCertificate:
		return "\U0001F4DC" // Scroll
	default:
		return ""
	}
}
