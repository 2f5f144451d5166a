package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSchemeOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "7", newBuilderConfig().idFn(7))
	assert.Equal(t, "AB", newBuilderConfig(WithExcelColumnIDs()).idFn(27))
	assert.Equal(t, "ff", newBuilderConfig(WithHexIDs()).idFn(255))
	assert.Equal(t, "v3", newBuilderConfig(WithHexIDs(), WithPrefixIDs("v")).idFn(3), "last wins")
	assert.Equal(t, []string{"0", "1", "2"}, newBuilderConfig().ids(3))

	assert.Panics(t, func() { WithIDScheme(nil) })
	assert.Panics(t, func() { ExcelColumnIDFn(-1) })
	assert.Panics(t, func() { HexIDFn(-1) })
}

func TestRNGOptions(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newBuilderConfig().rng)

	a := newBuilderConfig(WithSeed(5)).rng.Int63()
	b := newBuilderConfig(WithSeed(5)).rng.Int63()
	assert.Equal(t, a, b)

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, newBuilderConfig(WithRand(r)).rng)
	assert.Panics(t, func() { WithRand(nil) })
}

func TestPartitionPrefixDefaults(t *testing.T) {
	cfg := newBuilderConfig(WithPartitionPrefix("", "B"))
	assert.Equal(t, defaultLeftPrefix, cfg.leftPrefix)
	assert.Equal(t, "B", cfg.rightPrefix)
}
