package blockchain

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/icodeploy/internal/domain"
)

// CoerceArgs converts string arguments into the Go values the ABI packer
// expects for inputs
func CoerceArgs(inputs abi.Arguments, args []string) ([]any, error) {
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%w: constructor expects %d arguments, got %d", domain.ErrInvalidArgument, len(inputs), len(args))
	}

	values := make([]any, len(args))
	for i, input := range inputs {
		value, err := coerce(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d (%s %s): %v", domain.ErrInvalidArgument, i, input.Type.String(), input.Name, err)
		}
		values[i] = value
	}
	return values, nil
}

func coerce(t abi.Type, raw string) (any, error) {
	s := strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%q is not a hex address", raw)
		}
		return common.HexToAddress(s), nil

	case abi.UintTy, abi.IntTy:
		return coerceInt(t, s)

	case abi.BoolTy:
		return strconv.ParseBool(s)

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		return hexutil.Decode(s)

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported type %s", t.String())
	}
}

// coerceInt parses decimal or 0x-hex integers. Sizes of 8/16/32/64 bits map
// to native Go ints, everything else to *big.Int.
func coerceInt(t abi.Type, s string) (any, error) {
	base, digits := 10, s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", s)
	}

	unsigned := t.T == abi.UintTy
	if unsigned && n.Sign() < 0 {
		return nil, fmt.Errorf("%s is negative", s)
	}
	bits := t.Size
	if !unsigned {
		bits-- // sign bit
	}
	if n.BitLen() > bits {
		return nil, fmt.Errorf("%s overflows %s", s, t.String())
	}

	switch {
	case unsigned && t.Size == 8:
		return uint8(n.Uint64()), nil
	case unsigned && t.Size == 16:
		return uint16(n.Uint64()), nil
	case unsigned && t.Size == 32:
		return uint32(n.Uint64()), nil
	case unsigned && t.Size == 64:
		return n.Uint64(), nil
	case !unsigned && t.Size == 8:
		return int8(n.Int64()), nil
	case !unsigned && t.Size == 16:
		return int16(n.Int64()), nil
	case !unsigned && t.Size == 32:
		return int32(n.Int64()), nil
	case !unsigned && t.Size == 64:
		return n.Int64(), nil
	default:
		return n, nil
	}
}
