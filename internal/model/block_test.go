package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockBuilderWithName(t *testing.T) {
	for _, name := range []string{"foobar", "myFooBar", "a1234", "codeMeta20", "foo_bar"} {
		t.Run("valid "+name, func(t *testing.T) {
			assert.NoError(t, NewBlock().WithName(name))
		})
	}

	for _, name := range []string{"", "   ", "a b", "1234", "hello.", "_asda", "foo-bar", "1abcd", "PascalCase", "customBLOCK"} {
		t.Run("invalid "+name, func(t *testing.T) {
			assert.Error(t, NewBlock().WithName(name))
		})
	}
}

func TestBlockBuilderWithDataverseAlias(t *testing.T) {
	for _, alias := range []string{"", "foobar", "myFooBar", "a1234", "codeMeta20", "foo_bar", "foo-bar", "_asda", "1abcd", "PascalCase", "ALIAS", "customALIAS"} {
		t.Run("valid "+alias, func(t *testing.T) {
			assert.NoError(t, NewBlock().WithDataverseAlias(alias))
		})
	}

	for _, alias := range []string{"   ", "a b", "1234", "hello."} {
		t.Run("invalid "+alias, func(t *testing.T) {
			assert.Error(t, NewBlock().WithDataverseAlias(alias))
		})
	}
}

func TestBlockBuilderWithDisplayName(t *testing.T) {
	assert.NoError(t, NewBlock().WithDisplayName("test"))
	assert.NoError(t, NewBlock().WithDisplayName("Foo Bar Becue"))
	assert.NoError(t, NewBlock().WithDisplayName(strings.Repeat("a", 256)))
	// The limit counts characters, not bytes.
	assert.NoError(t, NewBlock().WithDisplayName(strings.Repeat("ä", 256)))

	assert.Error(t, NewBlock().WithDisplayName(""))
	assert.Error(t, NewBlock().WithDisplayName("   "))
	assert.Error(t, NewBlock().WithDisplayName(strings.Repeat("a", 257)))
	assert.Error(t, NewBlock().WithDisplayName(strings.Repeat("ä", 257)))
}

func TestBlockBuilderWithBlockURI(t *testing.T) {
	assert.NoError(t, NewBlock().WithBlockURI("http://dataverse.org/citation"))

	for _, uri := range []string{"", "https://", "://test.com/test"} {
		t.Run("invalid "+uri, func(t *testing.T) {
			assert.Error(t, NewBlock().WithBlockURI(uri))
		})
	}
}

func TestBlockBuilderBuild(t *testing.T) {
	t.Run("fails without init", func(t *testing.T) {
		_, err := NewBlock().Build()
		require.Error(t, err)
	})

	t.Run("succeeds without alias", func(t *testing.T) {
		b := NewBlock()
		require.NoError(t, b.WithName("test"))
		require.NoError(t, b.WithDisplayName("Test"))
		require.NoError(t, b.WithBlockURI("http://dataverse.org/test"))

		block, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "test", block.Name())
		assert.Equal(t, "Test", block.DisplayName())
		assert.Equal(t, "http://dataverse.org/test", block.BlockURI().String())
		_, present := block.DataverseAlias()
		assert.False(t, present)
	})

	t.Run("succeeds with alias", func(t *testing.T) {
		b := NewBlock()
		require.NoError(t, b.WithName("test"))
		require.NoError(t, b.WithDisplayName("Test"))
		require.NoError(t, b.WithBlockURI("http://dataverse.org/test"))
		require.NoError(t, b.WithDataverseAlias("test"))

		block, err := b.Build()
		require.NoError(t, err)
		alias, present := block.DataverseAlias()
		assert.True(t, present)
		assert.Equal(t, "test", alias)
	})
}

func TestBlockEqual(t *testing.T) {
	build := func(name, display string) Block {
		b := NewBlock()
		require.NoError(t, b.WithName(name))
		require.NoError(t, b.WithDisplayName(display))
		require.NoError(t, b.WithBlockURI("http://dataverse.org/"+name))
		block, err := b.Build()
		require.NoError(t, err)
		return block
	}

	assert.True(t, build("citation", "Citation").Equal(build("citation", "Other Display")))
	assert.False(t, build("citation", "Citation").Equal(build("geospatial", "Citation")))
}

func TestBlockWithLastLine(t *testing.T) {
	b := NewBlock()
	require.NoError(t, b.WithName("test"))
	require.NoError(t, b.WithDisplayName("Test"))
	require.NoError(t, b.WithBlockURI("http://dataverse.org/test"))
	block, err := b.Build()
	require.NoError(t, err)

	annotated := block.WithLastLine(7)
	assert.Equal(t, 7, annotated.LastLine())
	assert.Equal(t, 0, block.LastLine())
}
