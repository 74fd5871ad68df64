package wallet

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// CardCredentials are the values printed on a prepaid phone card.
type CardCredentials struct {
	Type   enums.CardType
	Serial string
	Code   string
}

// CardVerifier resolves the face value of a phone card in VND. Implementations
// return a CodeInvalidCard error for cards the carrier rejects.
type CardVerifier interface {
	Verify(ctx context.Context, card CardCredentials) (int64, error)
}

// VerifierCodeLength selects the offline verifier keyed on the code length.
const VerifierCodeLength = "code-length"

// faceValueByCodeLength mirrors how the carriers size their codes per denomination.
var faceValueByCodeLength = map[int]int64{
	13: 10000,
	14: 50000,
	15: 100000,
}

type codeLengthVerifier struct{}

// NewCodeLengthVerifier returns the deterministic verifier used when no carrier
// integration is configured.
func NewCodeLengthVerifier() CardVerifier {
	return codeLengthVerifier{}
}

func (codeLengthVerifier) Verify(_ context.Context, card CardCredentials) (int64, error) {
	if !card.Type.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidCard, "unsupported card type")
	}
	value, ok := faceValueByCodeLength[len(card.Code)]
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidCard, "card code does not match a known denomination")
	}
	return value, nil
}

// NewVerifier maps the configured mode to a verifier.
func NewVerifier(mode string) (CardVerifier, error) {
	switch mode {
	case "", VerifierCodeLength:
		return NewCodeLengthVerifier(), nil
	default:
		return nil, fmt.Errorf("unknown card verifier %q", mode)
	}
}
