package pref

import (
	"fmt"
	"runtime"

	"github.com/arloliu/prefpack/codec"
	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/internal/options"
)

// Option configures store construction.
type Option = options.Option[*storeConfig]

type storeConfig struct {
	userCodec  codec.Codec
	itemCodec  codec.Codec
	valueCodec codec.Codec
	workers    int
}

func defaultConfig() *storeConfig {
	return &storeConfig{
		userCodec:  codec.NewVarByteCodec(),
		itemCodec:  codec.NewVarByteCodec(),
		valueCodec: codec.NewVarByteCodec(),
		workers:    runtime.GOMAXPROCS(0),
	}
}

// WithIndexCodec sets the codec for both orientations' index lists.
func WithIndexCodec(c codec.Codec) Option {
	return options.New(func(cfg *storeConfig) error {
		if c == nil {
			return fmt.Errorf("%w: index codec", errs.ErrNilCodec)
		}
		cfg.userCodec = c
		cfg.itemCodec = c

		return nil
	})
}

// WithUserCodec sets the codec for the user orientation's index lists (the
// per-user item lists).
func WithUserCodec(c codec.Codec) Option {
	return options.New(func(cfg *storeConfig) error {
		if c == nil {
			return fmt.Errorf("%w: user index codec", errs.ErrNilCodec)
		}
		cfg.userCodec = c

		return nil
	})
}

// WithItemCodec sets the codec for the item orientation's index lists (the
// per-item user lists).
func WithItemCodec(c codec.Codec) Option {
	return options.New(func(cfg *storeConfig) error {
		if c == nil {
			return fmt.Errorf("%w: item index codec", errs.ErrNilCodec)
		}
		cfg.itemCodec = c

		return nil
	})
}

// WithValueCodec sets the codec for the rating values of both orientations.
func WithValueCodec(c codec.Codec) Option {
	return options.New(func(cfg *storeConfig) error {
		if c == nil {
			return fmt.Errorf("%w: value codec", errs.ErrNilCodec)
		}
		cfg.valueCodec = c

		return nil
	})
}

// WithWorkers sets the number of encode workers per build pass.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return options.New(func(cfg *storeConfig) error {
		if n <= 0 {
			return fmt.Errorf("workers must be positive, got %d", n)
		}
		cfg.workers = n

		return nil
	})
}
