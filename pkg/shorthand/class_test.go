package shorthand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ClassInfo
	}{
		{
			"simple",
			"mt-4",
			ClassInfo{Original: "mt-4", Type: "mt", Value: "4"},
		},
		{
			"no value",
			"flex",
			ClassInfo{Original: "flex", Type: "flex"},
		},
		{
			"variant chain",
			"hover:focus:lg:mt-4",
			ClassInfo{Original: "hover:focus:lg:mt-4", Prefix: "hover:focus:lg:", Type: "mt", Value: "4"},
		},
		{
			"negative",
			"-mt-4",
			ClassInfo{Original: "-mt-4", Type: "mt", Value: "4", Negative: true},
		},
		{
			"negative with variant",
			"md:-top-2",
			ClassInfo{Original: "md:-top-2", Prefix: "md:", Type: "top", Value: "2", Negative: true},
		},
		{
			"leading important",
			"!mt-4",
			ClassInfo{Original: "!mt-4", Type: "mt", Value: "4", Important: ImportantLeading},
		},
		{
			"trailing important",
			"mt-4!",
			ClassInfo{Original: "mt-4!", Type: "mt", Value: "4", Important: ImportantTrailing},
		},
		{
			"important after variants",
			"hover:!mt-4",
			ClassInfo{Original: "hover:!mt-4", Prefix: "hover:", Type: "mt", Value: "4", Important: ImportantLeading},
		},
		{
			"important before variants",
			"!hover:mt-4",
			ClassInfo{Original: "!hover:mt-4", Prefix: "hover:", Type: "mt", Value: "4", Important: ImportantOuter},
		},
		{
			"important and negative",
			"!-mt-4",
			ClassInfo{Original: "!-mt-4", Type: "mt", Value: "4", Negative: true, Important: ImportantLeading},
		},
		{
			"both important markers",
			"!mt-4!",
			ClassInfo{Original: "!mt-4!", Type: "!mt-4!", opaque: true},
		},
		{
			"double leading important",
			"!hover:!mt-4",
			ClassInfo{Original: "!hover:!mt-4", Type: "!hover:!mt-4", opaque: true},
		},
		{
			"compound type",
			"scroll-mt-4",
			ClassInfo{Original: "scroll-mt-4", Type: "scroll-mt", Value: "4"},
		},
		{
			"compound type without value",
			"border-x",
			ClassInfo{Original: "border-x", Type: "border-x"},
		},
		{
			"compound prefix needs segment boundary",
			"border-transparent",
			ClassInfo{Original: "border-transparent", Type: "border", Value: "transparent"},
		},
		{
			"grid-cols",
			"grid-cols-3",
			ClassInfo{Original: "grid-cols-3", Type: "grid-cols", Value: "3"},
		},
		{
			"arbitrary value",
			"w-[100px]",
			ClassInfo{Original: "w-[100px]", Type: "w", Value: "[100px]"},
		},
		{
			"arbitrary value with dash",
			"mt-[calc(100%-1rem)]",
			ClassInfo{Original: "mt-[calc(100%-1rem)]", Type: "mt", Value: "[calc(100%-1rem)]"},
		},
		{
			"custom property value",
			"p-(--gutter)",
			ClassInfo{Original: "p-(--gutter)", Type: "p", Value: "(--gutter)"},
		},
		{
			"arbitrary variant",
			"[&>*]:p-2",
			ClassInfo{Original: "[&>*]:p-2", Prefix: "[&>*]:", Type: "p", Value: "2"},
		},
		{
			"data variant with colon inside brackets",
			"data-[state=open:x]:mt-1",
			ClassInfo{Original: "data-[state=open:x]:mt-1", Prefix: "data-[state=open:x]:", Type: "mt", Value: "1"},
		},
		{
			"arbitrary property",
			"[mask-type:luminance]",
			ClassInfo{Original: "[mask-type:luminance]", Type: "[mask-type:luminance]"},
		},
		{
			"fraction",
			"w-1/2",
			ClassInfo{Original: "w-1/2", Type: "w", Value: "1/2"},
		},
		{
			"only a variant",
			"hover:",
			ClassInfo{Original: "hover:", Type: "hover:", opaque: true},
		},
		{
			"lone bang",
			"!",
			ClassInfo{Original: "!", Type: "!", opaque: true},
		},
		{
			"trailing dash",
			"mt-",
			ClassInfo{Original: "mt-", Type: "mt-", opaque: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseClass(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClass_RoundTrip(t *testing.T) {
	tokens := []string{
		"mt-4", "-mt-4", "!mt-4", "mt-4!", "hover:!mt-4", "!hover:mt-4",
		"md:hover:-inset-x-[3px]!", "border", "border-t-red-500", "rounded-tl-lg",
		"w-[calc(100%-2rem)]", "[&_p]:mt-2", "!mt-4!", "-", "--", "hover:",
		"bg-(--brand)", "text-ellipsis", "truncate", "group-hover/item:p-1",
	}
	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			assert.Equal(t, tok, ParseClass(tok).String())
		})
	}
}

func TestParseClasses_PreservesOrder(t *testing.T) {
	got := ParseClasses([]string{"ml-2", "flex", "mt-2", "ml-2"})
	assert.Len(t, got, 4)
	assert.Equal(t, "ml-2", got[0].Original)
	assert.Equal(t, "flex", got[1].Original)
	assert.Equal(t, "mt-2", got[2].Original)
	assert.Equal(t, "ml-2", got[3].Original)
}

func TestClassInfo_IsOpaque(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"!mt-4!", true},
		{"hover:", true},
		{"mt-", true},
		{"!", true},
		{"mt-4", false},
		{"hover:flex", false},
		{"flex", false},
		{"truncate", false},
		{"[mask-type:luminance]", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClass(tt.token).IsOpaque())
		})
	}
}

func TestImportance_String(t *testing.T) {
	assert.Equal(t, "none", ImportantNone.String())
	assert.Equal(t, "leading", ImportantLeading.String())
	assert.Equal(t, "trailing", ImportantTrailing.String())
	assert.Equal(t, "outer", ImportantOuter.String())
}
