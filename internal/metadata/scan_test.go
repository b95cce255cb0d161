package metadata

import "testing"

func TestLocate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantOK  bool
		wantLit string
	}{
		{
			name:    "rendered declaration",
			text:    sampleRendered + "import os\n",
			wantOK:  true,
			wantLit: sampleRendered[len("METADATA = ") : len(sampleRendered)-2],
		},
		{
			name:    "compact",
			text:    "METADATA={'a': 1}\nprint(1)\n",
			wantOK:  true,
			wantLit: "{'a': 1}",
		},
		{
			name:    "brace inside string",
			text:    "METADATA = {'t': 'a } b', 'u': \"{\"}\n",
			wantOK:  true,
			wantLit: "{'t': 'a } b', 'u': \"{\"}",
		},
		{
			name:    "nested closing brace followed by newline",
			text:    "METADATA = {\n    'd': {\n        'k': 1}\n,\n}\nx = 1\n",
			wantOK:  true,
			wantLit: "{\n    'd': {\n        'k': 1}\n,\n}",
		},
		{
			name:    "brace inside comment",
			text:    "METADATA = {\n    'a': 1,  # closes with }\n}\n",
			wantOK:  true,
			wantLit: "{\n    'a': 1,  # closes with }\n}",
		},
		{
			name:    "commented entry marker",
			text:    "METADATA = {\n    'args': [\n        # {'name': 'x'},\n    ],\n}\n",
			wantOK:  true,
			wantLit: "{\n    'args': [\n        # {'name': 'x'},\n    ],\n}",
		},
		{
			name:    "escaped quote in string",
			text:    `METADATA = {'t': 'it\'s }'}` + "\n",
			wantOK:  true,
			wantLit: `{'t': 'it\'s }'}`,
		},
		{
			name:    "triple quoted",
			text:    "METADATA = {'d': '''multi\n} line'''}\n",
			wantOK:  true,
			wantLit: "{'d': '''multi\n} line'''}",
		},
		{
			name:    "marker followed by prose",
			text:    "METADATA = {\n    'title': 'Keep me',\n    # {don't re-enable\n    'version': '1.0.3',\n}\n\nprint(1)\n",
			wantOK:  true,
			wantLit: "{\n    'title': 'Keep me',\n    # {don't re-enable\n    'version': '1.0.3',\n}",
		},
		{
			name:    "marker with unbalanced bracket",
			text:    "METADATA = {\n    'a': 1,\n    # {see [notes\n}\n",
			wantOK:  true,
			wantLit: "{\n    'a': 1,\n    # {see [notes\n}",
		},
		{name: "absent", text: "import os\n", wantOK: false},
		{name: "other identifier", text: "OLD_METADATA = {'a': 1}\n", wantOK: false},
		{name: "unbalanced", text: "METADATA = {'a': [1, 2}\n", wantOK: false},
		{name: "unterminated", text: "METADATA = {'a': 1,\n", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := Locate(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Locate() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got := span.Literal(tt.text); got != tt.wantLit {
				t.Errorf("Literal() = %q, want %q", got, tt.wantLit)
			}
		})
	}
}

func TestLocate_NotAtTop(t *testing.T) {
	text := "#!/usr/bin/env python3\nMETADATA = {'a': 1}\n\nprint(1)\n"
	span, ok := Locate(text)
	if !ok {
		t.Fatal("Locate() should find a declaration after a shebang")
	}
	if span.Start != len("#!/usr/bin/env python3\n") {
		t.Errorf("Start = %d", span.Start)
	}
}

func TestStripCommentMarkers(t *testing.T) {
	got := stripCommentMarkers("[\n    # {'name': 'x'},\n    #{'name': 'y'},\n    # keep me\n]")
	want := "[\n    {'name': 'x'},\n    {'name': 'y'},\n    # keep me\n]"
	if got != want {
		t.Errorf("stripCommentMarkers() = %q, want %q", got, want)
	}
}

func TestLocateLoose(t *testing.T) {
	text := "METADATA = {'name': [}\n\nprint({1})\n\n"
	span, ok := locateLoose(text)
	if !ok {
		t.Fatal("locateLoose() should find the first closing brace before a blank line")
	}
	if got := span.Literal(text); got != "{'name': [}" {
		t.Errorf("Literal() = %q", got)
	}
	if _, ok := locateLoose("METADATA = {'name': [}\n"); ok {
		t.Error("locateLoose() without a blank-line terminator should fail")
	}
}
