package transaction

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/transaction/operation"
)

type Checker struct {
	common.DefaultChecker

	NetworkID   []byte
	Transaction Transaction
}

func CheckType(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transaction.T != TransactionType {
		return errors.InvalidMessage.Clone().SetData("type", checker.Transaction.T)
	}

	return nil
}

func CheckSource(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if !keypair.IsValidAddress(checker.Transaction.B.Source) {
		return errors.BadPublicAddress.Clone().SetData("source", checker.Transaction.B.Source)
	}

	return nil
}

func CheckOperation(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	op := checker.Transaction.B.Operation
	if !operation.IsValidOperationType(string(op.H.Type)) {
		return errors.UnknownOperationType.Clone().SetData("type", string(op.H.Type))
	}

	return op.IsWellFormed()
}

// CheckOperationTargets requires every account named by the operation to
// be a valid public address.
func CheckOperationTargets(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	t, ok := checker.Transaction.B.Operation.B.(operation.Targetable)
	if !ok {
		return nil
	}

	for _, address := range t.TargetAddresses() {
		if !keypair.IsValidAddress(address) {
			return errors.BadPublicAddress.Clone().SetData("target", address)
		}
	}

	return nil
}

func CheckHash(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transaction.B.MakeHashString() != checker.Transaction.H.Hash {
		return errors.HashDoesNotMatch
	}

	return nil
}

func CheckVerifySignature(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	kp, err := keypair.Parse(checker.Transaction.B.Source)
	if err != nil {
		return errors.BadPublicAddress
	}

	err = kp.Verify(
		keypair.MakeSignaturePayload(checker.NetworkID, checker.Transaction.H.Hash),
		base58.Decode(checker.Transaction.H.Signature),
	)
	if err != nil {
		return errors.InvalidSignature
	}

	return nil
}
