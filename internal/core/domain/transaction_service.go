package domain

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Finalize assigns a random nonce when missing and computes the tx id over
// every field but solutions, static cost and fee bound.
func (tx *Transaction) Finalize() error {
	if tx.Nonce == 0 {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return err
		}
		tx.Nonce = binary.LittleEndian.Uint64(buf[:])
	}
	id, err := tx.CalcHash(false)
	if err != nil {
		return err
	}
	tx.ID = id
	return nil
}

// CalcHash returns the hash of the serialized transaction. With full set,
// solutions, static cost and max fee amount are included.
func (tx *Transaction) CalcHash(full bool) (Hash, error) {
	buf, err := tx.serialize(full)
	if err != nil {
		return Hash{}, err
	}
	return chainhash.DoubleHashH(buf), nil
}

// CalcCost returns the static execution cost of the transaction.
func (tx *Transaction) CalcCost(params *ChainParams) (uint64, error) {
	payload, err := tx.payloadSize()
	if err != nil {
		return 0, err
	}

	cost := params.TxBaseCost
	cost += uint64(len(tx.Inputs)) * params.TxInputCost
	cost += uint64(len(tx.Outputs)) * params.TxOutputCost
	cost += uint64(len(tx.Operations)) * params.TxExecuteCost
	cost += uint64(len(tx.Solutions)) * params.TxSolutionCost
	if tx.Deploy != nil {
		cost += params.TxDeployCost
	}
	cost += payload * params.TxByteCost
	return cost, nil
}

// IsSigned returns whether every input, and every operation that needs one,
// refers to an existing solution.
func (tx *Transaction) IsSigned() bool {
	numSolutions := len(tx.Solutions)
	if tx.Sender != nil && numSolutions == 0 {
		return false
	}
	for _, in := range tx.Inputs {
		if int(in.Solution) >= numSolutions {
			return false
		}
	}
	for _, op := range tx.Operations {
		if op.User == nil {
			continue
		}
		if int(op.Solution) >= numSolutions {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the transaction.
func (tx *Transaction) Clone() *Transaction {
	clone := *tx
	if tx.Sender != nil {
		sender := *tx.Sender
		clone.Sender = &sender
	}
	clone.Inputs = append([]TxIn(nil), tx.Inputs...)
	clone.Outputs = append([]TxOut(nil), tx.Outputs...)
	clone.Operations = make([]Operation, 0, len(tx.Operations))
	for _, op := range tx.Operations {
		op.Args = append([]interface{}(nil), op.Args...)
		if op.User != nil {
			user := *op.User
			op.User = &user
		}
		clone.Operations = append(clone.Operations, op)
	}
	if tx.Deploy != nil {
		deploy := *tx.Deploy
		clone.Deploy = &deploy
	}
	clone.Solutions = append([]Solution(nil), tx.Solutions...)
	if tx.ExecResult != nil {
		res := *tx.ExecResult
		clone.ExecResult = &res
	}
	return &clone
}

// ContractAddress is the address a deployed contract gets.
func (tx *Transaction) ContractAddress() Address {
	return Address(tx.ID)
}

func (tx *Transaction) payloadSize() (uint64, error) {
	size := 0
	for _, in := range tx.Inputs {
		if in.Memo != nil {
			size += len(*in.Memo)
		}
	}
	for _, out := range tx.Outputs {
		if out.Memo != nil {
			size += len(*out.Memo)
		}
	}
	for _, op := range tx.Operations {
		args, err := json.Marshal(op.Args)
		if err != nil {
			return 0, err
		}
		size += len(op.Method) + len(args)
	}
	if tx.Deploy != nil {
		deploy, err := json.Marshal(tx.Deploy)
		if err != nil {
			return 0, err
		}
		size += len(deploy)
	}
	return uint64(size), nil
}

func (tx *Transaction) serialize(full bool) ([]byte, error) {
	e := &encoder{}
	e.str("HDW/tx")
	e.str(tx.Network)
	e.varInt(uint64(tx.Expires))
	e.varInt(tx.FeeRatio)
	e.varInt(tx.Nonce)
	e.str(string(tx.Note))
	e.optAddress(tx.Sender)

	e.varInt(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		e.address(in.Address)
		e.address(in.Currency)
		e.varInt(in.Amount)
		e.optStr(in.Memo)
		e.varInt(uint64(in.Flags))
		if full {
			e.varInt(uint64(in.Solution))
		}
	}

	e.varInt(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		e.address(out.Address)
		e.address(out.Currency)
		e.varInt(out.Amount)
		e.optStr(out.Memo)
	}

	e.varInt(uint64(len(tx.Operations)))
	for _, op := range tx.Operations {
		e.varInt(uint64(op.Kind))
		e.address(op.Address)
		e.str(op.Method)
		e.json(op.Args)
		e.optAddress(op.User)
		e.varInt(op.Amount)
		e.address(op.Currency)
		if full {
			e.varInt(uint64(op.Solution))
		}
	}

	if tx.Deploy != nil {
		e.varInt(1)
		e.json(tx.Deploy)
	} else {
		e.varInt(0)
	}

	if full {
		e.varInt(tx.StaticCost)
		e.varInt(tx.MaxFeeAmount)
		e.varInt(uint64(len(tx.Solutions)))
		for _, sol := range tx.Solutions {
			e.bytes(sol.PubKey)
			e.bytes(sol.Signature)
		}
	}
	return e.buf.Bytes(), e.err
}

// encoder writes var-length fields and keeps the first error.
type encoder struct {
	buf bytes.Buffer
	err error
}

func (e *encoder) varInt(v uint64) {
	if e.err == nil {
		e.err = wire.WriteVarInt(&e.buf, 0, v)
	}
}

func (e *encoder) bytes(b []byte) {
	if e.err == nil {
		e.err = wire.WriteVarBytes(&e.buf, 0, b)
	}
}

func (e *encoder) str(s string) {
	if e.err == nil {
		e.err = wire.WriteVarString(&e.buf, 0, s)
	}
}

func (e *encoder) optStr(s *string) {
	if s == nil {
		e.varInt(0)
		return
	}
	e.varInt(1)
	e.str(*s)
}

func (e *encoder) address(a Address) {
	if e.err == nil {
		_, e.err = e.buf.Write(a[:])
	}
}

func (e *encoder) optAddress(a *Address) {
	if a == nil {
		e.varInt(0)
		return
	}
	e.varInt(1)
	e.address(*a)
}

func (e *encoder) json(v interface{}) {
	if e.err != nil {
		return
	}
	buf, err := json.Marshal(v)
	if err != nil {
		e.err = err
		return
	}
	e.bytes(buf)
}
