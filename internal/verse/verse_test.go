package verse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVerseLine_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"nine characters", "一二三，四五六，七", false},
		{"twelve characters", "一二三四五，六七八九十，", true},
		{"sixty characters", strings.Repeat("佛", 28) + "，" + strings.Repeat("法", 30) + "，", true},
		{"sixty-one characters", strings.Repeat("佛", 29) + "，" + strings.Repeat("法", 30) + "，", false},
		{"low han ratio", strings.Repeat("佛", 20) + "，" + strings.Repeat("a", 20) + "，" + strings.Repeat("法", 17), false},
		{"ratio exactly 0.8", "一二三四，五六七八，", false},
		{"single punctuation", "一二三四五六七八九十。", false},
		{"no punctuation", "一二三四五六七八九十", false},
		{"question and exclamation", "汝今知否此义云何？善哉善哉善哉！", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVerseLine(tt.text))
		})
	}
}

func TestHasSeparator(t *testing.T) {
	assert.True(t, HasSeparator("愿以此功德　　庄严佛净土，"))
	assert.False(t, HasSeparator("愿以此功德　庄严佛净土，"))
	assert.False(t, HasSeparator("愿以此功德  庄严佛净土，"))
}

func TestHanRatio(t *testing.T) {
	assert.Equal(t, 0.0, HanRatio(""))
	assert.Equal(t, 1.0, HanRatio("地藏菩萨"))
	assert.InDelta(t, 0.5, HanRatio("地藏ab"), 1e-9)
}

func TestSplitVerseLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two phrases",
			text: "恒河沙劫说难尽，见闻瞻礼一念间，",
			want: []string{"恒河沙劫说难尽，", "见闻瞻礼一念间，"},
		},
		{
			name: "quotes reattached",
			text: "「若有见闻者，悉发菩提心。」",
			want: []string{"「若有见闻者，", "悉发菩提心。」"},
		},
		{
			name: "question and exclamation marks",
			text: "汝知之否？善哉善哉！",
			want: []string{"汝知之否？", "善哉善哉！"},
		},
		{
			name: "single phrase unchanged",
			text: "南无地藏王菩萨。",
			want: []string{"南无地藏王菩萨。"},
		},
		{
			name: "single quoted phrase unchanged",
			text: "「南无地藏王菩萨。」",
			want: []string{"「南无地藏王菩萨。」"},
		},
		{
			name: "no punctuation unchanged",
			text: "南无本师释迦牟尼佛",
			want: []string{"南无本师释迦牟尼佛"},
		},
		{
			name: "unterminated tail dropped",
			text: "一二三，四五六，七八",
			want: []string{"一二三，", "四五六，"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitVerseLine(tt.text))
		})
	}
}

func TestSplitVerseLine_Empty(t *testing.T) {
	assert.Empty(t, SplitVerseLine(""))
	assert.Empty(t, SplitVerseLine("   "))
	assert.Empty(t, SplitVerseLine("　"))
}

func TestSplitVerseLine_FewerThanTwoMarksIsIdentity(t *testing.T) {
	inputs := []string{
		"南无",
		"大乘离文字普光明藏经",
		"尔时世尊告文殊师利菩萨。",
		"「如是我闻」",
		"唵，",
	}
	for _, in := range inputs {
		assert.Equal(t, []string{in}, SplitVerseLine(in), in)
	}
}

func TestSplitVerseLine_PreservesCharacters(t *testing.T) {
	inputs := []string{
		"恒河沙劫说难尽，见闻瞻礼一念间，",
		"「上报四重恩，下济三途苦。」",
		"若有见闻者， 悉发菩提心。",
	}
	for _, in := range inputs {
		lines := SplitVerseLine(in)
		require.Greater(t, len(lines), 1, in)
		assert.Equal(t, strings.ReplaceAll(in, " ", ""), strings.Join(lines, ""), in)
	}
}

func TestSplitSeparated(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "dedication verse",
			text: "「愿以此功德　　庄严佛净土，」",
			want: []string{"「愿以此功德", "庄严佛净土，」"},
		},
		{
			name: "phrases inside a rough line",
			text: "一切众生，皆有佛性。　　南无阿弥陀佛",
			want: []string{"一切众生，", "皆有佛性。", "南无阿弥陀佛"},
		},
		{
			name: "unterminated fragment in multi-phrase line dropped",
			text: "甲乙，丙丁，戊己　　庚辛",
			want: []string{"甲乙，", "丙丁，", "庚辛"},
		},
		{
			name: "separators at the edges",
			text: "　　南无地藏王菩萨　　",
			want: []string{"南无地藏王菩萨"},
		},
		{
			name: "question marks are not split in this pass",
			text: "云何？如是。　　善哉",
			want: []string{"云何？如是。", "善哉"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSeparated(tt.text))
		})
	}
}

func TestSplitSeparated_NoSeparatorLeft(t *testing.T) {
	lines := SplitSeparated("「愿以此功德　　庄严佛净土，　　上报四重恩　　下济三途苦。」")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "「愿以此功德"))
	assert.True(t, strings.HasSuffix(lines[3], "」"))
	for _, l := range lines {
		assert.NotContains(t, l, Separator)
	}
}

func TestSplitSeparated_Empty(t *testing.T) {
	assert.Empty(t, SplitSeparated(""))
	assert.Empty(t, SplitSeparated("　　　　"))
	assert.Empty(t, SplitSeparated("「　　」"))
}

func TestSplit_StripsByteOrderMark(t *testing.T) {
	assert.Equal(t, []string{"甲，", "乙。", "丙"}, SplitSeparated("\ufeff甲，乙。　　丙"))
	assert.Equal(t, []string{"甲", "乙"}, SplitSeparated("甲\ufeff　　\ufeff乙"))
	assert.Equal(t, []string{"甲乙丙丁，", "戊己庚辛。"}, SplitVerseLine("\ufeff甲乙丙丁，戊己庚辛。"))
	assert.Nil(t, SplitVerseLine("\ufeff "))
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "甲", trim(" \t\ufeff甲　\n"))
	assert.Equal(t, "\u0085甲", trim("\u0085甲"))
}

func TestSplitSeparated_PreservesCharacters(t *testing.T) {
	in := "「我今见闻得受持，　　愿解如来真实义。」"
	lines := SplitSeparated(in)
	assert.Equal(t, strings.ReplaceAll(in, Separator, ""), strings.Join(lines, ""))
}

func TestSplit_Deterministic(t *testing.T) {
	in := "「若有见闻者，悉发菩提心。」"
	assert.Equal(t, SplitVerseLine(in), SplitVerseLine(in))
	assert.Equal(t, SplitSeparated(in), SplitSeparated(in))
}

func TestPass(t *testing.T) {
	assert.True(t, SeparatorPass.Candidate("甲　　乙"))
	assert.False(t, LinePass.Candidate("甲　　乙"))
	assert.Equal(t, []string{"甲", "乙"}, SeparatorPass.Split("甲　　乙"))
	assert.Equal(t, []string{"一二，", "三四。"}, LinePass.Split("一二，三四。"))

	for _, p := range []Pass{SeparatorPass, LinePass} {
		got, err := ParsePass(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePass("nope")
	assert.Error(t, err)
}
