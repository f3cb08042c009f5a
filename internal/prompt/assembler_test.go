package prompt

import (
	"fmt"
	"strings"
	"testing"
)

func TestAssembleUserPromptUnmodified(t *testing.T) {
	t.Parallel()

	msg := "  salam bro \n"
	p := Assemble(msg, nil, "")
	if p.User != msg {
		t.Errorf("User = %q, want the raw message", p.User)
	}
}

func TestAssemblePersonaRules(t *testing.T) {
	t.Parallel()

	p := Assemble("salam bro", nil, "")

	for _, want := range []string{
		"Sən AxtarGet AI-san",
		`"Salam dostum! Necəsən?"`, // canned greeting reply
		"Mən AxtarGet AI-yam",      // canned identity reply
		"2-4 cümlə cavab ver",      // length constraint
		"EMOJİ QAYDALARI",
	} {
		if !strings.Contains(p.System, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	t.Parallel()

	p := Assemble("salam", nil, "")
	if strings.Contains(p.System, historyHeader) {
		t.Error("history header should be omitted for empty history")
	}
	if strings.Contains(p.System, strings.TrimSpace(searchLabel)) {
		t.Error("search label should be omitted for empty search text")
	}
}

func TestAssembleRendersHistory(t *testing.T) {
	t.Parallel()

	history := []Turn{
		{Role: RoleUser, Content: "salam"},
		{Role: RoleAssistant, Content: "Salam dostum! Necəsən?"},
	}
	p := Assemble("necəsən", history, "")

	if !strings.Contains(p.System, historyHeader) {
		t.Fatal("system prompt missing history header")
	}
	if !strings.Contains(p.System, "İstifadəçi: salam") {
		t.Error("user turn not rendered with its label")
	}
	if !strings.Contains(p.System, "Mən: Salam dostum! Necəsən?") {
		t.Error("assistant turn not rendered with its label")
	}
}

func TestAssembleTrimsHistoryToSixTurns(t *testing.T) {
	t.Parallel()

	var history []Turn
	for i := range 10 {
		history = append(history, Turn{Role: RoleUser, Content: fmt.Sprintf("mesaj %d", i)})
	}
	p := Assemble("sual", history, "")

	if strings.Contains(p.System, "mesaj 3") {
		t.Error("turn 3 should be trimmed (only trailing 6 kept)")
	}
	for i := 4; i < 10; i++ {
		if !strings.Contains(p.System, fmt.Sprintf("mesaj %d", i)) {
			t.Errorf("turn %d missing from context", i)
		}
	}
}

func TestAssembleIncludesSearchText(t *testing.T) {
	t.Parallel()

	p := Assemble("bugün hava", nil, "Bakıda hava 25 dərəcədir.")
	if !strings.Contains(p.System, "İnternet məlumatı: Bakıda hava 25 dərəcədir.") {
		t.Error("search snippet not rendered into system prompt")
	}
}

func TestAssembleIsPure(t *testing.T) {
	t.Parallel()

	history := []Turn{{Role: RoleUser, Content: "a"}}
	p1 := Assemble("m", history, "s")
	p2 := Assemble("m", history, "s")
	if p1 != p2 {
		t.Error("Assemble should be deterministic for identical inputs")
	}
}
