// Package scenarios declares the built-in confirmation flows and the state
// their stateful steps read from.
//
// The caller fills the relevant State section, starts the matching flow and
// leaves the section untouched until the flow terminates: render hooks read
// it again whenever the user navigates back.
package scenarios

// PathAndPubkey is read by the public key flows.
type PathAndPubkey struct {
	Path   string
	Pubkey string
}

// PathAndHash is read by the message signing flow.
type PathAndHash struct {
	Path    string
	HashHex string
}

// Wallet is read by the wallet registration, receive and spend flows.
type Wallet struct {
	Name               string
	DescriptorTemplate string
	Address            string
}

// CosignerPubkeyAndIndex is read by the cosigner flow. SignerIndex is the
// already formatted title, for example "Key @1, yours".
type CosignerPubkeyAndIndex struct {
	SignerIndex string
	Pubkey      string
}

// ValidateOutput is read by the output review flow. Index is the already
// formatted label shown under "Review".
type ValidateOutput struct {
	Index                string
	Amount               string
	AddressOrDescription string
}

// ValidateTransaction is read by the final transaction flow.
type ValidateTransaction struct {
	Fee string
}

// State holds the upstream content for every stateful step. Only the section
// belonging to the running flow needs to be valid.
type State struct {
	PathAndPubkey          PathAndPubkey
	PathAndHash            PathAndHash
	Wallet                 Wallet
	CosignerPubkeyAndIndex CosignerPubkeyAndIndex
	ValidateOutput         ValidateOutput
	ValidateTransaction    ValidateTransaction
}
