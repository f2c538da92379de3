package app

import (
	"strings"

	"github.com/hyperitsme/axion-backend/internal/domain"
)

const (
	feeRateFixed = 0.01
	feeRateFloat = 0.005

	// Static confirmation-latency model: the fast chain attests in ~40s,
	// everything else in ~90s.
	etaFastSeconds    = 40
	etaDefaultSeconds = 90
)

// QuoteService prices transfer intents from static tables. All market data
// is injected at construction so the engine stays pure and a real oracle can
// replace the tables without touching the contract.
type QuoteService struct {
	prices        map[string]float64
	chainDefaults map[string]string
	fastChain     string
}

type QuoteServiceOption func(*QuoteService)

// WithPrices overrides the unit price table (token symbol -> USD price).
func WithPrices(prices map[string]float64) QuoteServiceOption {
	return func(s *QuoteService) {
		if len(prices) > 0 {
			s.prices = prices
		}
	}
}

// WithChainDefaults overrides the chain -> native token table.
func WithChainDefaults(defaults map[string]string) QuoteServiceOption {
	return func(s *QuoteService) {
		if len(defaults) > 0 {
			s.chainDefaults = defaults
		}
	}
}

func NewQuoteService(opts ...QuoteServiceOption) *QuoteService {
	svc := &QuoteService{
		prices: map[string]float64{
			"SOL":   170,
			"ETH":   3500,
			"USDC":  1,
			"BNB":   600,
			"MATIC": 0.8,
		},
		chainDefaults: map[string]string{
			"solana":   "SOL",
			"ethereum": "ETH",
			"base":     "ETH",
			"bnb":      "BNB",
			"polygon":  "MATIC",
		},
		fastChain: "solana",
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type QuoteResult struct {
	AmountOut  float64
	FeeUSD     float64
	ETASeconds int
}

// Quote prices an intent. It is deterministic and has no side effects; the
// only failure mode is a malformed intent.
func (s *QuoteService) Quote(in domain.TransferIntent) (QuoteResult, error) {
	if err := in.Validate(); err != nil {
		return QuoteResult{}, err
	}

	srcToken := s.resolveToken(in.FromChain, in.Token)
	dstToken := s.resolveToken(in.ToChain, in.Token)
	srcPrice := s.price(srcToken)
	dstPrice := s.price(dstToken)

	feeRate := feeRateFloat
	if in.Mode == domain.PricingModeFixed {
		feeRate = feeRateFixed
	}

	gross := in.Amount * (srcPrice / dstPrice)

	eta := etaDefaultSeconds
	if strings.EqualFold(in.FromChain, s.fastChain) {
		eta = etaFastSeconds
	}

	return QuoteResult{
		AmountOut:  gross * (1 - feeRate),
		FeeUSD:     in.Amount * srcPrice * feeRate,
		ETASeconds: eta,
	}, nil
}

// resolveToken picks the chain's native token when one is configured and
// falls back to the token named in the intent.
func (s *QuoteService) resolveToken(chain, token string) string {
	if native, ok := s.chainDefaults[strings.ToLower(chain)]; ok {
		return native
	}
	return token
}

// price looks up a unit price; unknown tokens price at 1 rather than failing.
func (s *QuoteService) price(token string) float64 {
	if p, ok := s.prices[token]; ok {
		return p
	}
	return 1
}
