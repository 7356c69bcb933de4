package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/folio/dsl"
)

const sampleProfile = `
// 合同转换配置
profile Contract v1 {
  meta {
    title: "${source.stem}"
    author: "Legal"
    keywords: [
      "contract"
      "internal"
    ]
  }

  resources {
    font Body {
      src: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
      fallback: "builtin:go-regular"
      size: 12pt
    }
  }

  extract {
    command: "docx2txt"
    args: ["{src}", "{dst}"]
    intermediate: "output.txt"
  }

  page A4 portrait margin 50pt {
    line-height: 1.25x
    paragraph-spacing: 30pt
    split: greedy; legacy-spacing: false
  }
}
`

func TestParseProfile(t *testing.T) {
	p, err := dsl.ParseString(sampleProfile)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if p.Name != "Contract" {
		t.Fatalf("expected profile name Contract, got %s", p.Name)
	}
	if p.Version != "v1" {
		t.Fatalf("expected version v1, got %s", p.Version)
	}
	if len(p.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(p.Sections))
	}
	kinds := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		kinds[i] = s.Kind()
	}
	if got := strings.Join(kinds, ","); got != "meta,resources,extract,page" {
		t.Fatalf("unexpected section kinds: %s", got)
	}

	meta := p.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "${source.stem}" {
		t.Fatalf("expected raw placeholder in title, got %s", got)
	}
	keywords := meta.Block.Statements[2].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", keywords)
	}

	font := p.Sections[1].Resources.Block.Statements[0].Command
	if font == nil || font.Name != "font" {
		t.Fatalf("expected font command, got %+v", p.Sections[1].Resources.Block.Statements[0])
	}
	if len(font.Args) != 1 || font.Args[0].Value != "Body" {
		t.Fatalf("unexpected font args: %+v", font.Args)
	}
	if font.Block == nil || len(font.Block.Statements) != 3 {
		t.Fatalf("font block should have 3 assignments")
	}
	size := font.Block.Statements[2].Assignment
	if size == nil || size.Value.Number == nil || *size.Value.Number != "12pt" {
		t.Fatalf("expected size 12pt, got %+v", size)
	}

	args := p.Sections[2].Extract.Block.Statements[1].Assignment
	if args == nil || args.Value.Array == nil || len(args.Value.Array.Values) != 2 {
		t.Fatalf("expected args array, got %+v", args)
	}
	if got := string(*args.Value.Array.Values[1].String); got != "{dst}" {
		t.Fatalf("expected {dst} placeholder, got %s", got)
	}

	page := p.Sections[3].Page
	if page.Spec.Size != "A4" {
		t.Fatalf("expected page size A4, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 3 || page.Spec.Params[0].Value != "portrait" || page.Spec.Params[2].Value != "50pt" {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}
	if page.Spec.Params[2].Type != "Number" {
		t.Fatalf("expected margin length to lex as Number, got %s", page.Spec.Params[2].Type)
	}
	if len(page.Block.Statements) != 4 {
		t.Fatalf("expected 4 page statements, got %d", len(page.Block.Statements))
	}
	split := page.Block.Statements[2].Assignment
	if split == nil || split.Value.Expr == nil || split.Value.Expr.Text() != "greedy" {
		t.Fatalf("split should capture bare identifier, got %+v", split)
	}
	lh := page.Block.Statements[0].Assignment
	if lh == nil || lh.Value.Number == nil || *lh.Value.Number != "1.25x" {
		t.Fatalf("expected line-height 1.25x, got %+v", lh)
	}
}

func TestParseRejectsMalformedProfile(t *testing.T) {
	inputs := []string{
		"",
		"profile Contract {",
		"profile Contract v1 { page { } }",
		"profile Contract v1 { unknown { } }",
	}
	for _, in := range inputs {
		if _, err := dsl.ParseString(in); err == nil {
			t.Fatalf("expected parse error for %q", in)
		}
	}
}

func TestParseReader(t *testing.T) {
	p, err := dsl.Parse(strings.NewReader("profile Minimal v2 {\n}\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Name != "Minimal" || len(p.Sections) != 0 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}
