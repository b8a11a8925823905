// Package assistant answers shopper questions with a generative model,
// grounding each prompt in the best-rated products of the catalog.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/example/afrimarket/internal/domain/product"
)

const (
	// promptProducts is how many top-rated products the prompt lists.
	promptProducts = 5
	maxQueryRunes  = 500
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service allows one question in flight at a time. A question asked while
// another is running is dropped with ErrBusy.
type Service struct {
	gen  Generator
	busy atomic.Bool
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Busy reports whether a question is being answered.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Ask answers query using catalog as context. The catalog is not modified.
func (s *Service) Ask(ctx context.Context, query string, catalog []product.Product) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if !s.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.busy.Store(false)

	answer, err := s.gen.Generate(ctx, BuildPrompt(query, catalog))
	if err != nil {
		log.Printf("[Assistant] Generation failed: %v", err)
		return "", err
	}
	return answer, nil
}

// BuildPrompt renders the French shopping-assistant prompt.
func BuildPrompt(query string, catalog []product.Product) string {
	top := product.TopRated(catalog, promptProducts)
	listed := make([]string, len(top))
	for i, p := range top {
		listed[i] = fmt.Sprintf("%s (%d XOF, ⭐%s/5)", p.Name, p.Price, strconv.FormatFloat(p.Rating, 'f', -1, 64))
	}

	return fmt.Sprintf(`Tu es l'assistant shopping d'AfriMarket, marketplace africaine.

Produits disponibles: %s

Question: "%s"

Réponds SIMPLEMENT:
- En français, professionnel mais amical
- Si question produit: recommande 1-2 produits avec prix exact
- Si question livraison: "AfriMarket livre 20 pays africains en 48-72h"
- Si question paiement: "Orange Money, MTN, Wave, Moov, Free Money - 100%% sécurisé"
- Si hors-contexte: "Je suis spécialisé en shopping, comment puis-je vous aider?"
- Max 100 mots, sois concis`, strings.Join(listed, ", "), truncate(query, maxQueryRunes))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
