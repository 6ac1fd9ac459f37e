package podcast

import "testing"

var testVoices = [2]string{"voice-one", "voice-two"}

func TestParseScript(t *testing.T) {
	script := "**Host 1:** Hello\n**Host 2:** Hi\nignored line\n"
	got := ParseScript(script, testVoices)
	if len(got) != 2 {
		t.Fatalf("got %d utterances, want 2", len(got))
	}
	if got[0] != (Utterance{Text: "Hello", Speaker: "voice-one"}) {
		t.Fatalf("first utterance = %+v", got[0])
	}
	if got[1] != (Utterance{Text: "Hi", Speaker: "voice-two"}) {
		t.Fatalf("second utterance = %+v", got[1])
	}
}

func TestParseScriptPreservesOrder(t *testing.T) {
	script := "**Host 2:** b\n**Host 1:** a\n**Host 2:** c\n"
	got := ParseScript(script, testVoices)
	want := []Utterance{
		{Text: "b", Speaker: "voice-two"},
		{Text: "a", Speaker: "voice-one"},
		{Text: "c", Speaker: "voice-two"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d utterances, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("utterance %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseScriptDropsNoise(t *testing.T) {
	script := "# Podcast\n\n**Host 1:**   \n**Narrator:** nope\n  **Host 1:** trimmed  \n"
	got := ParseScript(script, testVoices)
	if len(got) != 1 {
		t.Fatalf("got %d utterances, want 1", len(got))
	}
	if got[0].Text != "trimmed" {
		t.Fatalf("text = %q, want %q", got[0].Text, "trimmed")
	}
}

func TestParseScriptEmpty(t *testing.T) {
	if got := ParseScript("no tags here\nat all\n", testVoices); len(got) != 0 {
		t.Fatalf("got %d utterances, want 0", len(got))
	}
	if got := ParseScript("", testVoices); len(got) != 0 {
		t.Fatalf("got %d utterances from empty script, want 0", len(got))
	}
}
