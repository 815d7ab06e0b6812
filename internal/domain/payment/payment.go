package payment

import (
	"github.com/go-faster/errors"
)

// Method is the payment instrument used for a purchase.
type Method string

const (
	MethodCard       Method = "CARD"
	MethodUPI        Method = "UPI"
	MethodNetBanking Method = "NET_BANKING"
	MethodWallet     Method = "WALLET"
	MethodCOD        Method = "COD"
)

// CardType distinguishes credit from debit cards.
type CardType string

const (
	CardCredit CardType = "CREDIT"
	CardDebit  CardType = "DEBIT"
)

// Construction errors surfaced when required card fields are missing.
var (
	ErrBankNameRequired = errors.New("bank name is required for card payments")
	ErrCardTypeRequired = errors.New("card type is required for card payments")
)

// Info carries the payment details relevant to bank-keyed discounts.
type Info struct {
	Method   Method
	BankName string
	CardType CardType
}

// New builds an Info, failing fast when the CARD method is missing its
// bank name or card type. Other methods carry bank and card fields only
// when provided.
func New(method Method, bankName string, cardType CardType) (*Info, error) {
	if method == MethodCard {
		if bankName == "" {
			return nil, ErrBankNameRequired
		}
		if cardType == "" {
			return nil, ErrCardTypeRequired
		}
	}

	return &Info{
		Method:   method,
		BankName: bankName,
		CardType: cardType,
	}, nil
}
