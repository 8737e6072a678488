package tokens

import (
	"errors"
	"fmt"
	"sync"

	"go-pricechart/pkg/models"
)

var (
	ErrUnknownToken   = errors.New("unknown token")
	ErrDuplicateToken = errors.New("token already listed")
	ErrInvalidAmount  = errors.New("amount must be positive")
)

// DefaultTokens is the mocked wallet listing with spot prices in USD.
func DefaultTokens() []models.Token {
	return []models.Token{
		{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Balance: 1.234, Price: 3500},
		{ID: "usd-coin", Name: "USD Coin", Symbol: "USDC", Balance: 2500, Price: 1},
		{ID: "uiswap", Name: "UIswap", Symbol: "UIS", Balance: 1000, Price: 2.5},
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Balance: 0.05, Price: 65000},
		{ID: "cardano", Name: "Cardano", Symbol: "ADA", Balance: 1500, Price: 0.45},
		{ID: "solana", Name: "Solana", Symbol: "SOL", Balance: 25, Price: 150},
		{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", Balance: 100, Price: 6.8},
		{ID: "chainlink", Name: "Chainlink", Symbol: "LINK", Balance: 75, Price: 15.2},
	}
}

// Catalog is an ordered, in-memory token list.
type Catalog struct {
	mu     sync.RWMutex
	order  []string
	tokens map[string]models.Token
}

// NewCatalog seeds the catalog with DefaultTokens; an override with a known
// ID replaces that entry, a new ID is appended.
func NewCatalog(overrides ...models.Token) *Catalog {
	c := &Catalog{tokens: make(map[string]models.Token)}
	for _, t := range DefaultTokens() {
		c.put(t)
	}
	for _, t := range overrides {
		c.put(t)
	}
	return c
}

func (c *Catalog) put(t models.Token) {
	if _, ok := c.tokens[t.ID]; !ok {
		c.order = append(c.order, t.ID)
	}
	c.tokens[t.ID] = t
}

func (c *Catalog) List() []models.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Token, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tokens[id])
	}
	return out
}

func (c *Catalog) Get(id string) (models.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tokens[id]
	if !ok {
		return models.Token{}, fmt.Errorf("%w: %s", ErrUnknownToken, id)
	}
	return t, nil
}

func (c *Catalog) Add(t models.Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tokens[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateToken, t.ID)
	}
	c.put(t)
	return nil
}

func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tokens[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownToken, id)
	}
	delete(c.tokens, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
