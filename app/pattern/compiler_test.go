package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_MatchesEitherScript(t *testing.T) {
	p, err := Compile("预告", DefaultVariants())
	require.NoError(t, err)

	assert.True(t, p.Match("最新電影預告片"))
	assert.True(t, p.Match("最新电影预告片"))
	assert.False(t, p.Match("最新电影"))
}

func TestCompile_TraditionalEntryMatchesSimplifiedText(t *testing.T) {
	p, err := Compile("電視劇", DefaultVariants())
	require.NoError(t, err)

	assert.True(t, p.Match("热门电视剧推荐"))
	assert.True(t, p.Match("熱門電視劇推薦"))
}

func TestCompile_CaseInsensitive(t *testing.T) {
	p, err := Compile("Trailer", DefaultVariants())
	require.NoError(t, err)

	assert.True(t, p.Match("Official TRAILER 2"))
	assert.True(t, p.Match("official trailer"))
}

func TestCompile_EscapesMetacharacters(t *testing.T) {
	p, err := Compile("v1.2", DefaultVariants())
	require.NoError(t, err)

	assert.True(t, p.Match("release v1.2 notes"))
	assert.False(t, p.Match("release v1x2 notes"))

	p, err = Compile("(live)*", DefaultVariants())
	require.NoError(t, err)
	assert.True(t, p.Match("Concert (live)* edition"))
	assert.False(t, p.Match("Concert live edition"))
}

func TestCompile_ExactPrefixAnchors(t *testing.T) {
	p, err := Compile("=Music", DefaultVariants())
	require.NoError(t, err)

	assert.True(t, p.Match("music"))
	assert.True(t, p.Match("  Music "))
	assert.False(t, p.Match("Music Channel"))
	assert.Equal(t, "=Music", p.Source())
}

func TestCompile_FullWidthLatinNormalised(t *testing.T) {
	p, err := Compile("ASMR", DefaultVariants())
	require.NoError(t, err)

	assert.True(t, p.Match("睡前ＡＳＭＲ"))
}

func TestCompileList_DropsMalformedEntries(t *testing.T) {
	matchers := CompileList([]string{"good", "", "   ", "=", "bad\xff", "also good"}, DefaultVariants())

	require.Len(t, matchers, 2)
	assert.Equal(t, "good", matchers[0].Source())
	assert.Equal(t, "also good", matchers[1].Source())
}

func TestLiteralList(t *testing.T) {
	matchers := LiteralList([]string{"预告", "=Exact Name", ""})
	require.Len(t, matchers, 2)

	// no script conversion in literal mode
	assert.True(t, matchers[0].Match("电影预告"))
	assert.False(t, matchers[0].Match("電影預告"))

	assert.True(t, matchers[1].Match("exact name"))
	assert.False(t, matchers[1].Match("exact name 2"))
}

func TestFirst(t *testing.T) {
	matchers := CompileList([]string{"cat", "dog"}, DefaultVariants())

	m, ok := First(matchers, "hot dog stand")
	require.True(t, ok)
	assert.Equal(t, "dog", m.Source())

	_, ok = First(matchers, "")
	assert.False(t, ok)

	_, ok = First(nil, "anything")
	assert.False(t, ok)
}

func TestNewVariants_Symmetric(t *testing.T) {
	v := NewVariants([]string{"发發", "发髮", "xx", "abc"})

	assert.ElementsMatch(t, []rune{'發', '髮'}, v.Lookup('发'))
	assert.Equal(t, []rune{'发'}, v.Lookup('發'))
	assert.Empty(t, v.Lookup('x'))
	assert.Empty(t, v.Lookup('a'))
}

func TestExpression(t *testing.T) {
	v := NewVariants([]string{"预預"})
	assert.Equal(t, `[预預]告\.`, Expression("预告.", v))
}
