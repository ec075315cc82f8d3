package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockName(t *testing.T) {
	valid := []string{"foobar", "myFooBar", "a1234", "codeMeta20", "foo_bar"}
	for _, s := range valid {
		t.Run("valid "+s, func(t *testing.T) {
			assert.True(t, BlockName(s))
		})
	}

	invalid := []string{
		"", "   ", "a b", "1234", "hello.", "_asda", "foo-bar",
		"1abcd", "PascalCase", "customBLOCK", "foo__bar", "a",
	}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			assert.False(t, BlockName(s))
		})
	}
}

func TestCollectionAlias(t *testing.T) {
	valid := []string{
		"foobar", "myFooBar", "a1234", "codeMeta20", "foo_bar", "foo-bar",
		"_asda", "1abcd", "PascalCase", "ALIAS", "customALIAS",
	}
	for _, s := range valid {
		t.Run("valid "+s, func(t *testing.T) {
			assert.True(t, CollectionAlias(s))
		})
	}

	invalid := []string{"", "   ", "a b", "1234", "hello.", "trailing_", "trailing-"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			assert.False(t, CollectionAlias(s))
		})
	}
}

func TestFieldName(t *testing.T) {
	valid := []string{"foobar_", "foo_bar_", "_foobar", "_foo_bar", "foobar", "foobar1234", "foo_bar_1234"}
	for _, s := range valid {
		t.Run("valid "+s, func(t *testing.T) {
			assert.True(t, FieldName(s))
		})
	}

	invalid := []string{"", "   ", "\t", "_foobar_", "_foo_bar_", "foo bar", "foo.bar"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			assert.False(t, FieldName(s))
		})
	}
}

func TestURL(t *testing.T) {
	valid := []string{
		"http://dataverse.org/citation",
		"https://dataverse.org/schema/citation",
		"http://purl.org/dc/terms/title",
		"file:///etc/schema",
		"ftp://example.org/pub",
		"http://example.org/%3Ctitle%3E",
		"https://example.org/path?q=a&b=c#frag",
	}
	for _, s := range valid {
		t.Run("valid "+s, func(t *testing.T) {
			assert.True(t, URL(s))
		})
	}

	invalid := []string{
		"", "https://", "://test.com/test", "dataverse.org/citation",
		"gopher://old.example.org", "http://example.org/with space",
		"http://example.org/<title>", "http://example.org/a|b",
		"http://example.org/{x}", `http://example.org/a"b`,
		`http://example.org/a\b`, "http://example.org/café",
	}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			assert.False(t, URL(s))
		})
	}
}

func TestStrictBool(t *testing.T) {
	assert.True(t, StrictBool("TRUE"))
	assert.True(t, StrictBool("FALSE"))

	for _, s := range []string{"", "true", "false", "True", "0", "1", "foobar", " TRUE"} {
		t.Run("invalid "+s, func(t *testing.T) {
			assert.False(t, StrictBool(s))
		})
	}
}

func TestNonBlank(t *testing.T) {
	assert.True(t, NonBlank("x"))
	assert.True(t, NonBlank(" x "))
	assert.False(t, NonBlank(""))
	assert.False(t, NonBlank("   "))
	assert.False(t, NonBlank("\t"))
}

func TestEmptyOrNonBlank(t *testing.T) {
	assert.True(t, EmptyOrNonBlank(""))
	assert.True(t, EmptyOrNonBlank("foobar"))
	assert.True(t, EmptyOrNonBlank("My name is Hase, I know about nothing."))
	assert.False(t, EmptyOrNonBlank("   "))
	assert.False(t, EmptyOrNonBlank("\t"))
}

func TestNonNegativeInt(t *testing.T) {
	for _, s := range []string{"0", "1", "42", "2147483647"} {
		assert.True(t, NonNegativeInt(s), s)
	}
	for _, s := range []string{"", "-1", "1.5", "abc", "0x10", "2147483648"} {
		assert.False(t, NonNegativeInt(s), s)
	}
}
