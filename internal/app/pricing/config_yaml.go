package pricing

import (
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// configFile mirrors the YAML layout. Absent keys keep their defaults.
type configFile struct {
	CashDiscountPercent *decimal `yaml:"cash_discount_percent"`
	Installments        struct {
		Max      *int     `yaml:"max"`
		MinValue *decimal `yaml:"min_value"`
	} `yaml:"installments"`
	Shipping struct {
		FreeThreshold   *decimal `yaml:"free_threshold"`
		StandardRate    *decimal `yaml:"standard_rate"`
		ExpressRate     *decimal `yaml:"express_rate"`
		StandardDays    *string  `yaml:"standard_days"`
		ExpressDays     *string  `yaml:"express_days"`
		PickupDays      *string  `yaml:"pickup_days"`
		PickupAvailable *bool    `yaml:"pickup_available"`
	} `yaml:"shipping"`
	// Coupons replaces the whole table when present.
	Coupons map[string]decimal `yaml:"coupons"`
}

// decimal reads a YAML scalar as an exact decimal, so 19.90 never passes through float64.
type decimal struct {
	m *money.Money
}

func (d *decimal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", n.Line)
	}
	m, err := money.Parse(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	d.m = m
	return nil
}

// ParseConfig overlays a YAML document on DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if f.CashDiscountPercent != nil {
		cfg.CashDiscountRate = percent(f.CashDiscountPercent.m)
	}
	if f.Installments.Max != nil {
		cfg.MaxInstallments = *f.Installments.Max
	}
	if f.Installments.MinValue != nil {
		cfg.MinInstallmentValue = f.Installments.MinValue.m
	}

	s := f.Shipping
	if s.FreeThreshold != nil {
		cfg.FreeShippingThreshold = s.FreeThreshold.m
	}
	if s.StandardRate != nil {
		cfg.StandardRate = s.StandardRate.m
	}
	if s.ExpressRate != nil {
		cfg.ExpressRate = s.ExpressRate.m
	}
	if s.StandardDays != nil {
		cfg.StandardDeliveryDays = *s.StandardDays
	}
	if s.ExpressDays != nil {
		cfg.ExpressDeliveryDays = *s.ExpressDays
	}
	if s.PickupDays != nil {
		cfg.PickupDeliveryDays = *s.PickupDays
	}
	if s.PickupAvailable != nil {
		cfg.PickupAvailable = *s.PickupAvailable
	}

	if f.Coupons != nil {
		cfg.Coupons = make(map[string]*big.Rat, len(f.Coupons))
		for code, pct := range f.Coupons {
			cfg.Coupons[strings.ToUpper(strings.TrimSpace(code))] = percent(pct.m)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func percent(m *money.Money) *big.Rat {
	return new(big.Rat).Quo(m.Rat(), big.NewRat(100, 1))
}
