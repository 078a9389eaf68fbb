package chain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// transferEventSignature is the topic hash of the ERC-20 Transfer event.
var transferEventSignature = gethcrypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// stablecoinDecimals converts ledger amounts (USD-equivalent units) into
// token base units. USDC and friends use 6 decimals.
const stablecoinDecimals = 1e6

var (
	// ErrTxNotFound means the hash is unknown to the node (yet).
	ErrTxNotFound = errors.New("transaction not found")
	// ErrTxReverted means the transaction executed and failed.
	ErrTxReverted = errors.New("transaction reverted")
	// ErrNoMatchingTransfer means the receipt carries no token transfer to
	// the expected recipient for at least the expected amount.
	ErrNoMatchingTransfer = errors.New("no matching transfer in receipt")
	// ErrInsufficientConfirmations means the transaction is mined but not
	// yet buried deep enough.
	ErrInsufficientConfirmations = errors.New("insufficient confirmations")
)

// RPCClient is the subset of the Ethereum RPC the verifier needs.
type RPCClient interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*gethtypes.Header, error)
}

// Dial initialises an EVM RPC client for the provided endpoint.
func Dial(endpoint string) (*ethclient.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("chain rpc endpoint required")
	}
	return ethclient.Dial(trimmed)
}

// Verifier validates that a client-supplied transaction hash corresponds to
// a successful, sufficiently confirmed stablecoin transfer of at least the
// expected amount to the expected recipient. No ledger row is written
// without this check passing when a verifier is configured.
type Verifier struct {
	client        RPCClient
	token         common.Address
	confirmations uint64
}

// NewVerifier constructs a Verifier for one token contract.
func NewVerifier(client RPCClient, token common.Address, confirmations uint64) *Verifier {
	return &Verifier{client: client, token: token, confirmations: confirmations}
}

// TokenUnits converts a decimal stablecoin amount into base units.
func TokenUnits(amount float64) *big.Int {
	return big.NewInt(int64(math.Round(amount * stablecoinDecimals)))
}

// Confirm checks the receipt for txHash: it must exist, have succeeded, be
// confirmed to the configured depth, and contain a Transfer on the expected
// token to `to` with value >= minAmount.
func (v *Verifier) Confirm(ctx context.Context, txHash string, to string, minAmount float64) error {
	if v == nil || v.client == nil {
		return fmt.Errorf("verifier not initialised")
	}
	hash := common.HexToHash(txHash)
	if (hash == common.Hash{}) {
		return fmt.Errorf("tx hash required")
	}
	recipient := common.HexToAddress(to)
	if (recipient == common.Address{}) {
		return fmt.Errorf("recipient address required")
	}

	receipt, err := v.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return fmt.Errorf("%w: %s", ErrTxNotFound, hash.Hex())
		}
		return fmt.Errorf("fetch receipt: %w", err)
	}
	if receipt == nil {
		return fmt.Errorf("%w: %s", ErrTxNotFound, hash.Hex())
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: %s", ErrTxReverted, hash.Hex())
	}
	if err := v.checkDepth(ctx, receipt); err != nil {
		return err
	}

	want := TokenUnits(minAmount)
	for _, log := range receipt.Logs {
		if log == nil || log.Address != v.token {
			continue
		}
		if len(log.Topics) < 3 || log.Topics[0] != transferEventSignature {
			continue
		}
		if common.BytesToAddress(log.Topics[2].Bytes()) != recipient {
			continue
		}
		value := new(big.Int).SetBytes(log.Data)
		if value.Cmp(want) >= 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoMatchingTransfer, hash.Hex())
}

func (v *Verifier) checkDepth(ctx context.Context, receipt *gethtypes.Receipt) error {
	if v.confirmations == 0 {
		return nil
	}
	header, err := v.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return fmt.Errorf("fetch head: %w", err)
	}
	if header == nil || header.Number == nil || receipt.BlockNumber == nil {
		return fmt.Errorf("block metadata unavailable")
	}
	if header.Number.Cmp(receipt.BlockNumber) < 0 {
		return fmt.Errorf("transaction block ahead of head")
	}
	confirmed := new(big.Int).Sub(header.Number, receipt.BlockNumber)
	confirmed.Add(confirmed, big.NewInt(1))
	if confirmed.Cmp(new(big.Int).SetUint64(v.confirmations)) < 0 {
		return fmt.Errorf("%w: have %s want %d", ErrInsufficientConfirmations, confirmed, v.confirmations)
	}
	return nil
}
