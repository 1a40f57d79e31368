// Package catalog holds every literal string shown by the built-in flows.
// Strings are loaded once from an embedded go-i18n message file.
package catalog

import (
	_ "embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
)

//go:embed messages/active.en.toml
var englishMessages []byte

// Message IDs.
const (
	ConfirmPublicKey     = "ConfirmPublicKey"
	DerivationLine1      = "DerivationLine1"
	DerivationLine2      = "DerivationLine2"
	RejectIfNotSureLine1 = "RejectIfNotSureLine1"
	RejectIfNotSureLine2 = "RejectIfNotSureLine2"
	Approve              = "Approve"
	Continue             = "Continue"
	Reject               = "Reject"
	PathTitle            = "PathTitle"
	PublicKeyTitle       = "PublicKeyTitle"
	WalletPolicyTitle    = "WalletPolicyTitle"
	AddressTitle         = "AddressTitle"
	ExternalInputsLine1  = "ExternalInputsLine1"
	ExternalInputsLine2  = "ExternalInputsLine2"
	UnverifiedInputs     = "UnverifiedInputs"
	UpdateLine1          = "UpdateLine1"
	UpdateLine2          = "UpdateLine2"
	ThirdPartyLine1      = "ThirdPartyLine1"
	ThirdPartyLine2      = "ThirdPartyLine2"
	NondefaultSighash    = "NondefaultSighash"
	ReviewTitle          = "ReviewTitle"
	OutputLabel          = "OutputLabel"
	OutputIndexLabel     = "OutputIndexLabel"
	AmountTitle          = "AmountTitle"
	ConfirmLine1         = "ConfirmLine1"
	ConfirmLine2         = "ConfirmLine2"
	FeesTitle            = "FeesTitle"
	AcceptLine1          = "AcceptLine1"
	AcceptLine2          = "AcceptLine2"
	RegisterWallet       = "RegisterWallet"
	ReceiveInLine1       = "ReceiveInLine1"
	SpendFromLine1       = "SpendFromLine1"
	KnownWalletLine2     = "KnownWalletLine2"
	WalletNameTitle      = "WalletNameTitle"
	SignLine1            = "SignLine1"
	MessageLine2         = "MessageLine2"
	MessageHashTitle     = "MessageHashTitle"
	CosignerOursLabel    = "CosignerOursLabel"
	CosignerTheirsLabel  = "CosignerTheirsLabel"
)

var (
	loadOnce  sync.Once
	localizer *i18n.Localizer
)

func load() *i18n.Localizer {
	loadOnce.Do(func() {
		bundle := i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		if _, err := bundle.ParseMessageFileBytes(englishMessages, "active.en.toml"); err != nil {
			// The file is embedded; a parse failure is a build defect.
			panic(err)
		}
		localizer = i18n.NewLocalizer(bundle, language.English.String())
	})
	return localizer
}

// Text returns the string for id. Unknown ids are logged and returned as-is.
func Text(id string) string {
	return Format(id, nil)
}

// Format returns the string for id with data applied to its template.
func Format(id string, data map[string]any) string {
	s, err := load().Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		internal.GetInternalLogger().Error("missing display string", "id", id, "error", err)
		return id
	}
	return s
}
