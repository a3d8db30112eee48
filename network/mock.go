package network

import "context"

// MockChainService is a test double for ChainService. Each function field
// must be set before the corresponding method is called.
type MockChainService struct {
	ListUnspentFn     func(ctx context.Context, address string) ([]UTXO, error)
	RecommendedFeesFn func(ctx context.Context) (*FeeTiers, error)
	RawTxHexFn        func(ctx context.Context, txid string) (string, error)
	BroadcastTxFn     func(ctx context.Context, rawTxHex string) (string, error)
	BestBlockHeightFn func(ctx context.Context) (uint64, error)
}

func (m *MockChainService) ListUnspent(ctx context.Context, address string) ([]UTXO, error) {
	return m.ListUnspentFn(ctx, address)
}
func (m *MockChainService) RecommendedFees(ctx context.Context) (*FeeTiers, error) {
	return m.RecommendedFeesFn(ctx)
}
func (m *MockChainService) RawTxHex(ctx context.Context, txid string) (string, error) {
	return m.RawTxHexFn(ctx, txid)
}
func (m *MockChainService) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastTxFn(ctx, rawTxHex)
}
func (m *MockChainService) BestBlockHeight(ctx context.Context) (uint64, error) {
	return m.BestBlockHeightFn(ctx)
}
