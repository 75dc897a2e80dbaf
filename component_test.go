package fogbugz

import "testing"

func TestFormatAxisValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare token", "Widget", "Widget"},
		{"wildcard", "*", "*"},
		{"space", "Widget Factory", `"Widget Factory"`},
		{"colon", "a:b", `"a:b"`},
		{"date range", "-1w..today", `"-1w..today"`},
		{"leading dash", "-Milestone", `"-Milestone"`},
		{"embedded quote", `say "hi"`, `"say \"hi\""`},
		{"already quoted keeps single wrapping", `"Widget Factory"`, `"Widget Factory"`},
		{"already quoted with inner quote", `"say "hi""`, `"say \"hi\""`},
		{"quote only is not treated as wrapped", `"`, `"\""`},
		{"bare value with quote still escaped", `a"b`, `"a\"b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAxisValue(tt.in); got != tt.want {
				t.Errorf("formatAxisValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearchComponent_Stringify(t *testing.T) {
	tests := []struct {
		name string
		c    searchComponent
		want string
	}{
		{"term", searchComponent{kind: kindTerm, text: "apple"}, "apple"},
		{"phrase", searchComponent{kind: kindPhrase, text: "apple peach"}, `"apple peach"`},
		{"negated term", searchComponent{kind: kindNegatedTerm, text: "peach"}, "-peach"},
		{"axis", searchComponent{kind: kindAxis, axis: "project", value: "Widget"}, "project:Widget"},
		{"negated axis", searchComponent{kind: kindNegatedAxis, axis: "tag", value: "obsolete"}, "-tag:obsolete"},
		{"exact axis", searchComponent{kind: kindExactAxis, axis: "project", value: "1"}, "project:=1"},
		{
			// Exact values are escaped but never wrapped, whatever they contain.
			"exact axis never auto-quotes",
			searchComponent{kind: kindExactAxis, axis: "title", value: `a "b" c`},
			`title:=a \"b\" c`,
		},
		{
			"or group",
			searchComponent{kind: kindOrGroup, children: []searchComponent{
				{kind: kindTerm, text: "apple"},
				{kind: kindAxis, axis: "status", value: "Active"},
			}},
			"(apple OR status:Active)",
		},
		{
			// Defensive fallback: cannot be built through OrBuilder, but
			// rendering must stay total.
			"empty or group renders empty",
			searchComponent{kind: kindOrGroup},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.stringify(); got != tt.want {
				t.Errorf("stringify() = %q, want %q", got, tt.want)
			}
		})
	}
}
