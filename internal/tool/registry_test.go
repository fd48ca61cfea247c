package tool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve_Order(t *testing.T) {
	r := DefaultRegistry()

	// Request categories out of order; resolution order must not change.
	tools, err := r.Resolve(CategoryDoc, CategoryGeneral, CategorySecurity)
	require.NoError(t, err)
	require.NotEmpty(t, tools)

	var cats []Category
	for _, tl := range tools {
		if len(cats) == 0 || cats[len(cats)-1] != tl.Category {
			cats = append(cats, tl.Category)
		}
	}
	assert.Equal(t, []Category{CategoryGeneral, CategorySecurity, CategoryDoc}, cats)
}

func TestRegistry_Resolve_DeclarationOrderWithinCategory(t *testing.T) {
	r := NewRegistry(map[Category][]Tool{
		CategoryGeneral: {
			{Name: "zeta", Category: CategoryGeneral, Origin: OriginStandard},
			{Name: "alpha", Category: CategoryGeneral, Origin: OriginStandard},
		},
	})

	tools, err := r.Resolve(CategoryGeneral)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "zeta", tools[0].Name, "declaration order wins over lexical order")
	assert.Equal(t, "alpha", tools[1].Name)
}

func TestRegistry_Resolve_UnknownCategory(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Resolve(CategoryGeneral, Category("quantum"))
	require.Error(t, err)

	var unknownErr *UnknownCategoryError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "quantum", unknownErr.Category)
	assert.Contains(t, unknownErr.Available, "security")
}

func TestRegistry_Resolve_Idempotent(t *testing.T) {
	r := DefaultRegistry()

	first, err := r.Resolve(CategoryGeneral, CategoryBuild, CategorySecurity)
	require.NoError(t, err)
	second, err := r.Resolve(CategoryGeneral, CategoryBuild, CategorySecurity)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompose_ExtraDuplicateAppearsOnce(t *testing.T) {
	standard := []Tool{{Name: "git", Category: CategoryGeneral, Origin: OriginStandard}}
	language := []Tool{{Name: "foo", Category: CategoryBuild}}

	// "foo" is both a language tool and a user extra.
	set := Compose(standard, language, []string{"foo"})

	names := set.Names()
	count := 0
	for _, n := range names {
		if n == "foo" {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicate extra must appear exactly once")

	// The language origin wins because it was added first.
	for _, tl := range set.Tools() {
		if tl.Name == "foo" {
			assert.Equal(t, OriginLanguage, tl.Origin)
		}
	}
}

func TestCompose_StandardNeverDisplaced(t *testing.T) {
	standard := []Tool{{Name: "git", Category: CategoryGeneral, Origin: OriginStandard}}
	language := []Tool{{Name: "git", Category: CategoryBuild}}

	set := Compose(standard, language, []string{"git"})

	require.Equal(t, 1, set.Len())
	got := set.Tools()[0]
	assert.Equal(t, OriginStandard, got.Origin)
	assert.Equal(t, CategoryGeneral, got.Category)
}

func TestCompose_OrderStable(t *testing.T) {
	standard := []Tool{
		{Name: "git", Category: CategoryGeneral, Origin: OriginStandard},
		{Name: "jq", Category: CategoryGeneral, Origin: OriginStandard},
	}
	language := []Tool{{Name: "cargo", Category: CategoryBuild}}
	extras := []string{"bat", "hyperfine"}

	first := Compose(standard, language, extras)
	second := Compose(standard, language, extras)

	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, []string{"git", "jq", "cargo", "bat", "hyperfine"}, first.Names())
}

func TestSet_Contains(t *testing.T) {
	set := Compose([]Tool{{Name: "git", Category: CategoryGeneral, Origin: OriginStandard}}, nil, nil)

	assert.True(t, set.Contains("git"))
	assert.False(t, set.Contains("hg"))
}
