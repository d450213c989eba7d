package pattern

import (
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

func TestTaggedPatternMatching(t *testing.T) {
	v := cbor.Tagged(100, cbor.Uint(42))

	if paths, _ := AnyTagged().PathsWithCaptures(v); len(paths) == 0 {
		t.Error("AnyTagged() rejected a tagged value")
	}
	if paths, _ := AnyTagged().PathsWithCaptures(cbor.Uint(1)); len(paths) != 0 {
		t.Error("AnyTagged() matched an untagged value")
	}
	if paths, _ := TaggedWithTag(100).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("TaggedWithTag(100) rejected its own tag")
	}
	if paths, _ := TaggedWithTag(200).PathsWithCaptures(v); len(paths) != 0 {
		t.Error("TaggedWithTag(200) matched tag 100")
	}
	if paths, _ := TaggedWithTagSet([]uint64{50, 100}).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("TaggedWithTagSet([50,100]) rejected tag 100")
	}
	if paths, _ := TaggedWithContent(NumberExact(42)).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("TaggedWithContent(42) rejected matching content")
	}
	if paths, _ := TaggedWithTagAndContent(100, NumberExact(42)).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("TaggedWithTagAndContent(100, 42) rejected a match")
	}
	if paths, _ := TaggedWithTagAndContent(100, NumberExact(43)).PathsWithCaptures(v); len(paths) != 0 {
		t.Error("TaggedWithTagAndContent(100, 43) matched content 42")
	}
}

func TestTaggedWithTagSetAndContent(t *testing.T) {
	v := cbor.Tagged(cbor.DateTag, cbor.Uint(1700000000))
	pat := TaggedWithTagSetAndContent([]uint64{cbor.DateTag, cbor.DigestTag}, AnyNumber())
	paths, _ := pat.PathsWithCaptures(v)
	if len(paths) == 0 {
		t.Error("TaggedWithTagSetAndContent rejected a tag in its set")
	}

	other := cbor.Tagged(999, cbor.Uint(1))
	if paths, _ := pat.PathsWithCaptures(other); len(paths) != 0 {
		t.Error("TaggedWithTagSetAndContent matched a tag outside its set")
	}
}

func TestTaggedPatternCapturesNestContentPath(t *testing.T) {
	inner := Capture("x", AnyNumber())
	v := cbor.Tagged(7, cbor.Uint(5))
	pat := TaggedWithTagAndContent(7, inner)
	_, captures := pat.PathsWithCaptures(v)
	paths := captures["x"]
	if len(paths) != 1 {
		t.Fatalf("len(captures[\"x\"]) = %d, want 1", len(paths))
	}
	if len(paths[0]) != 2 {
		t.Fatalf("capture path length = %d, want 2 (tagged value, content)", len(paths[0]))
	}
}

func TestTagByNameRegistry(t *testing.T) {
	tag, ok := tagByName("date")
	if !ok || tag != cbor.DateTag {
		t.Errorf("tagByName(\"date\") = (%d, %v), want (%d, true)", tag, ok, cbor.DateTag)
	}
	if _, ok := tagByName("not-a-registered-name"); ok {
		t.Error("tagByName matched an unregistered name")
	}
}

func TestRegisterTagName(t *testing.T) {
	RegisterTagName("test-custom-tag", 999999)
	tag, ok := tagByName("test-custom-tag")
	if !ok || tag != 999999 {
		t.Errorf("tagByName after RegisterTagName = (%d, %v), want (999999, true)", tag, ok)
	}
}

func TestTagsMatchingName(t *testing.T) {
	re, err := CompileTextRegex("^da.*$")
	if err != nil {
		t.Fatalf("CompileTextRegex() error = %v", err)
	}
	tags := tagsMatchingName(re)
	found := false
	for _, tg := range tags {
		if tg == cbor.DateTag {
			found = true
		}
	}
	if !found {
		t.Error("tagsMatchingName(/^da.*$/) did not include the date tag")
	}
}
