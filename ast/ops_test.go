package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignOp_RoundTrip(t *testing.T) {
	for op := AssignSet; op <= AssignXor; op++ {
		s := op.String()
		require.NotEqual(t, "<undefined>", s)
		parsed, err := ParseAssignOp(s)
		require.NoError(t, err, "op %q", s)
		assert.Equal(t, op, parsed)
	}
}

func TestBinaryOp_RoundTrip(t *testing.T) {
	for op := BinaryLogicalAnd; op <= BinaryGreaterEqual; op++ {
		s := op.String()
		require.NotEqual(t, "<undefined>", s)
		parsed, err := ParseBinaryOp(s)
		require.NoError(t, err, "op %q", s)
		assert.Equal(t, op, parsed)
	}
}

func TestUnaryOp_RoundTrip(t *testing.T) {
	for op := UnaryLogicalNot; op <= UnaryDec; op++ {
		s := op.String()
		require.NotEqual(t, "<undefined>", s)
		parsed, err := ParseUnaryOp(s)
		require.NoError(t, err, "op %q", s)
		assert.Equal(t, op, parsed)
	}
}

func TestCtrlTransfer_RoundTrip(t *testing.T) {
	for ct := TransferBreak; ct <= TransferDiscard; ct++ {
		s := ct.String()
		require.NotEqual(t, "<undefined>", s)
		parsed, err := ParseCtrlTransfer(s)
		require.NoError(t, err, "transfer %q", s)
		assert.Equal(t, ct, parsed)
	}
}

func TestParse_InvalidSpellings(t *testing.T) {
	_, err := ParseAssignOp("==")
	assert.Error(t, err)

	_, err = ParseBinaryOp("=")
	assert.Error(t, err)

	_, err = ParseUnaryOp("&&")
	assert.Error(t, err)

	_, err = ParseCtrlTransfer("return")
	assert.Error(t, err)
}

func TestIsBitwise(t *testing.T) {
	assert.True(t, BinaryOr.IsBitwise())
	assert.True(t, BinaryXor.IsBitwise())
	assert.True(t, BinaryAnd.IsBitwise())
	assert.True(t, BinaryLShift.IsBitwise())
	assert.True(t, BinaryRShift.IsBitwise())
	assert.False(t, BinaryLogicalAnd.IsBitwise())
	assert.False(t, BinaryAdd.IsBitwise())

	assert.True(t, UnaryNot.IsBitwise())
	assert.False(t, UnaryLogicalNot.IsBitwise())
	assert.False(t, UnaryNegate.IsBitwise())

	assert.True(t, AssignOr.IsBitwise())
	assert.True(t, AssignLShift.IsBitwise())
	assert.False(t, AssignAdd.IsBitwise())
	assert.False(t, AssignSet.IsBitwise())
}

func TestBinaryOp_Predicates(t *testing.T) {
	assert.True(t, BinaryLogicalOr.IsLogical())
	assert.False(t, BinaryOr.IsLogical())

	assert.True(t, BinaryEqual.IsCompare())
	assert.True(t, BinaryLessEqual.IsCompare())
	assert.False(t, BinaryAdd.IsCompare())
}
