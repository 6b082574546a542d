package wallet

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/core/domain"
)

// GetTokenList returns the whitelisted currencies that the ledger knows as
// tokens, plus the native currency.
func (s *Service) GetTokenList(ctx context.Context) ([]domain.Address, error) {
	whitelist := s.tokenWhitelist()
	contracts, err := s.ledger.GetContracts(ctx, whitelist)
	if err != nil {
		return nil, err
	}

	tokens := []domain.Address{domain.NativeCurrency}
	for i, contract := range contracts {
		if i >= len(whitelist) || contract == nil {
			continue
		}
		if contract.TypeName == domain.ContractTypeToken && !whitelist[i].IsZero() {
			tokens = append(tokens, whitelist[i])
		}
	}
	return tokens, nil
}

// AddToken adds a currency to the persisted whitelist.
func (s *Service) AddToken(ctx context.Context, token domain.Address) error {
	if err := s.repo.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			for _, t := range settings.TokenWhitelist {
				if t == token {
					return settings, nil
				}
			}
			settings.TokenWhitelist = append(settings.TokenWhitelist, token)
			return settings, nil
		},
	); err != nil {
		return err
	}

	s.tokenLock.Lock()
	s.whitelist[token] = struct{}{}
	s.tokenLock.Unlock()

	log.Infof("added token %s to whitelist", token)
	return nil
}

// RemToken removes a currency from the persisted whitelist. The native
// currency always stays whitelisted.
func (s *Service) RemToken(ctx context.Context, token domain.Address) error {
	if err := s.repo.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			for i, t := range settings.TokenWhitelist {
				if t == token {
					settings.TokenWhitelist = append(
						settings.TokenWhitelist[:i], settings.TokenWhitelist[i+1:]...,
					)
					return settings, nil
				}
			}
			return nil, ErrTokenNotFound
		},
	); err != nil {
		return err
	}

	if !token.IsZero() {
		s.tokenLock.Lock()
		delete(s.whitelist, token)
		s.tokenLock.Unlock()
	}

	log.Infof("removed token %s from whitelist", token)
	return nil
}

// tokenWhitelist returns the whitelisted currencies in ascending order.
func (s *Service) tokenWhitelist() []domain.Address {
	s.tokenLock.RLock()
	defer s.tokenLock.RUnlock()

	tokens := make([]domain.Address, 0, len(s.whitelist))
	for token := range s.whitelist {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Compare(tokens[j]) < 0
	})
	return tokens
}

func (s *Service) isWhitelisted(currency domain.Address) bool {
	s.tokenLock.RLock()
	defer s.tokenLock.RUnlock()

	_, ok := s.whitelist[currency]
	return ok
}
