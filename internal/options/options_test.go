package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildConfig mirrors the shape of the store configuration structs that
// consume this package.
type buildConfig struct {
	Workers     int
	Compression string
	SortRows    bool
	LastCall    string
}

func (c *buildConfig) SetWorkers(n int) error {
	if n < 0 {
		return errors.New("workers cannot be negative")
	}
	c.Workers = n
	c.LastCall = "SetWorkers"

	return nil
}

func (c *buildConfig) SetCompression(name string) {
	c.Compression = name
	c.LastCall = "SetCompression"
}

func (c *buildConfig) SetSortRows(enabled bool) {
	c.SortRows = enabled
	c.LastCall = "SetSortRows"
}

func TestOption_New(t *testing.T) {
	cfg := &buildConfig{}

	t.Run("creates option that can return error", func(t *testing.T) {
		opt := New(func(c *buildConfig) error {
			return c.SetWorkers(4)
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 4, cfg.Workers)
		require.Equal(t, "SetWorkers", cfg.LastCall)
	})

	t.Run("propagates errors from option function", func(t *testing.T) {
		opt := New(func(c *buildConfig) error {
			return c.SetWorkers(-1) // This should return an error
		})

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "workers cannot be negative")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &buildConfig{}

	t.Run("creates option from function without error", func(t *testing.T) {
		opt := NoError(func(c *buildConfig) {
			c.SetCompression("zstd")
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.Equal(t, "zstd", cfg.Compression)
		require.Equal(t, "SetCompression", cfg.LastCall)
	})

	t.Run("works with boolean setter", func(t *testing.T) {
		opt := NoError(func(c *buildConfig) {
			c.SetSortRows(true)
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.True(t, cfg.SortRows)
		require.Equal(t, "SetSortRows", cfg.LastCall)
	})
}

func TestOption_Apply(t *testing.T) {
	cfg := &buildConfig{}

	t.Run("applies multiple options in order", func(t *testing.T) {
		opts := []Option[*buildConfig]{
			New(func(c *buildConfig) error { return c.SetWorkers(8) }),
			NoError(func(c *buildConfig) { c.SetCompression("lz4") }),
			NoError(func(c *buildConfig) { c.SetSortRows(true) }),
		}

		err := Apply(cfg, opts...)
		require.NoError(t, err)
		require.Equal(t, 8, cfg.Workers)
		require.Equal(t, "lz4", cfg.Compression)
		require.True(t, cfg.SortRows)
		require.Equal(t, "SetSortRows", cfg.LastCall) // Last option should be the last call
	})

	t.Run("stops at first error and returns it", func(t *testing.T) {
		cfg := &buildConfig{} // Reset config

		opts := []Option[*buildConfig]{
			New(func(c *buildConfig) error { return c.SetWorkers(2) }),  // Should succeed
			New(func(c *buildConfig) error { return c.SetWorkers(-1) }), // Should fail
			NoError(func(c *buildConfig) { c.SetCompression("should not be set") }),
		}

		err := Apply(cfg, opts...)
		require.Error(t, err)
		require.Contains(t, err.Error(), "workers cannot be negative")

		// Only the first option should have been applied
		require.Equal(t, 2, cfg.Workers)
		require.Equal(t, "", cfg.Compression)
		require.Equal(t, "SetWorkers", cfg.LastCall)
	})

	t.Run("works with empty options slice", func(t *testing.T) {
		cfg := &buildConfig{}
		err := Apply(cfg)
		require.NoError(t, err)
		// Config should remain unchanged
		require.Equal(t, 0, cfg.Workers)
		require.Equal(t, "", cfg.Compression)
		require.False(t, cfg.SortRows)
	})
}

func TestOption_Integration(t *testing.T) {
	cfg := &buildConfig{}

	// Helper functions that return options (the WithXxx pattern used by
	// the store and format packages)
	withWorkers := func(n int) Option[*buildConfig] {
		return New(func(c *buildConfig) error {
			return c.SetWorkers(n)
		})
	}

	withCompression := func(name string) Option[*buildConfig] {
		return NoError(func(c *buildConfig) {
			c.SetCompression(name)
		})
	}

	withSortRows := func(enabled bool) Option[*buildConfig] {
		return NoError(func(c *buildConfig) {
			c.SetSortRows(enabled)
		})
	}

	t.Run("works with helper functions", func(t *testing.T) {
		err := Apply(cfg,
			withWorkers(16),
			withCompression("s2"),
			withSortRows(true),
		)

		require.NoError(t, err)
		require.Equal(t, 16, cfg.Workers)
		require.Equal(t, "s2", cfg.Compression)
		require.True(t, cfg.SortRows)
	})
}

// Test with different types to ensure generics work properly
type simpleStruct struct {
	Data string
}

func TestOption_GenericsWithDifferentTypes(t *testing.T) {
	t.Run("works with simple struct", func(t *testing.T) {
		s := &simpleStruct{}
		opt := NoError(func(ss *simpleStruct) {
			ss.Data = "generic test"
		})

		err := opt.apply(s)
		require.NoError(t, err)
		require.Equal(t, "generic test", s.Data)
	})

	t.Run("works with primitive types", func(t *testing.T) {
		var num int
		opt := NoError(func(n *int) {
			*n = 42
		})

		err := opt.apply(&num)
		require.NoError(t, err)
		require.Equal(t, 42, num)
	})
}
