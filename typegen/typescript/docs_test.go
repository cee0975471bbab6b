package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDoc(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty",
			raw:  "  ",
			want: nil,
		},
		{
			name: "plain text",
			raw:  "The order total.",
			want: []string{"The order total."},
		},
		{
			name: "summary",
			raw:  "<summary>\n  The order total.\n  Includes tax.\n</summary>",
			want: []string{"The order total.", "Includes tax."},
		},
		{
			name: "summary and remarks",
			raw:  "<summary>Total.</summary>\n<remarks>Rounded to cents.</remarks>",
			want: []string{"Total.", "", "Rounded to cents."},
		},
		{
			name: "other sections are dropped",
			raw:  "<summary>Adds.</summary><param name=\"x\">The x.</param><returns>Sum.</returns>",
			want: []string{"Adds."},
		},
		{
			name: "see cref",
			raw:  `<summary>See <see cref="T:Shop.Models.Order"/> for details.</summary>`,
			want: []string{"See Order for details."},
		},
		{
			name: "see method cref",
			raw:  `<summary>Calls <see cref="M:Shop.Api.Submit(System.String)"/>.</summary>`,
			want: []string{"Calls Submit."},
		},
		{
			name: "see text wins over cref",
			raw:  `<summary>Read <see href="https://example.com">the guide</see>.</summary>`,
			want: []string{"Read the guide."},
		},
		{
			name: "langword",
			raw:  `<summary>Returns <see langword="null"/> when absent.</summary>`,
			want: []string{"Returns null when absent."},
		},
		{
			name: "paramref and code",
			raw:  `<summary>Uses <paramref name="count"/> as <c>int</c>.</summary>`,
			want: []string{"Uses count as `int`."},
		},
		{
			name: "paragraphs",
			raw:  "<summary><para>First.</para><para>Second.</para></summary>",
			want: []string{"First.", "", "Second."},
		},
		{
			name: "entities",
			raw:  "<summary>a &lt; b &amp;&amp; c</summary>",
			want: []string{"a < b && c"},
		},
		{
			name: "malformed",
			raw:  "<summary>Unclosed",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDoc(tt.raw))
		})
	}
}

func TestRenderDoc(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		hints []Hint
		want  string
	}{
		{
			name: "nothing",
			want: "",
		},
		{
			name: "summary only",
			raw:  "<summary>Total.</summary>",
			want: "/**\n * Total.\n */",
		},
		{
			name:  "hint only",
			hints: []Hint{HintDateTimeOffset},
			want:  "/**\n * ISO-8601 date-time string with offset.\n */",
		},
		{
			name:  "summary and hint",
			raw:   "<summary>How long.</summary>",
			hints: []Hint{HintDuration},
			want:  "/**\n * How long.\n *\n * Duration in milliseconds.\n */",
		},
		{
			name: "comment terminator is escaped",
			raw:  "Matches */ literally",
			want: "/**\n * Matches *\\/ literally\n */",
		},
		{
			name:  "malformed with hint",
			raw:   "<summary>",
			hints: []Hint{HintDuration},
			want:  "/**\n * Duration in milliseconds.\n */",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderDoc(tt.raw, tt.hints))
		})
	}
}
