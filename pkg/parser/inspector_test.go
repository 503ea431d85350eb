package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inspect(t *testing.T, source string, lang Language) *FileInfo {
	t.Helper()
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte(source), lang, "test")
	require.NoError(t, err)
	return Inspect(result)
}

func TestInspectJava(t *testing.T) {
	info := inspect(t, `package com.example.orders;

import java.util.List;
import com.example.billing.*;

public class OrderService {
    public OrderService() {}

    public void place(List<String> items) {}

    private int count() { return 0; }
}
`, LangJava)

	assert.Equal(t, "com.example.orders", info.Package)
	assert.False(t, info.HasSyntaxError)

	require.Len(t, info.Imports, 2)
	assert.Equal(t, Import{Path: "java.util.List"}, info.Imports[0])
	assert.Equal(t, Import{Path: "com.example.billing", Wildcard: true}, info.Imports[1])

	require.Len(t, info.Types, 1)
	typ := info.Types[0]
	assert.Equal(t, "OrderService", typ.Name)
	assert.Equal(t, "com.example.orders", typ.Package)

	var names []string
	for _, m := range typ.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"OrderService", "place", "count"}, names)
}

func TestInspectJavaNestedTypes(t *testing.T) {
	info := inspect(t, `class Outer {
    void outerMethod() {}

    static class Inner {
        void innerMethod() {}
    }
}
`, LangJava)

	require.Len(t, info.Types, 2)
	assert.Equal(t, "Outer", info.Types[0].Name)
	assert.Equal(t, "Inner", info.Types[1].Name)

	// Each type owns only its own methods.
	require.Len(t, info.Types[0].Methods, 1)
	assert.Equal(t, "outerMethod", info.Types[0].Methods[0].Name)
	require.Len(t, info.Types[1].Methods, 1)
	assert.Equal(t, "innerMethod", info.Types[1].Methods[0].Name)
}

func TestInspectJavaInterfaceEnumRecord(t *testing.T) {
	info := inspect(t, `interface Shape { double area(); }
enum Color { RED, GREEN }
record Point(int x, int y) {}
`, LangJava)

	var names []string
	for _, typ := range info.Types {
		names = append(names, typ.Name)
	}
	assert.Equal(t, []string{"Shape", "Color", "Point"}, names)
}

func TestInspectKotlin(t *testing.T) {
	info := inspect(t, `package com.example.orders

import java.time.Instant
import com.example.billing.*

class OrderService {
    constructor(retries: Int) {}

    fun place(items: List<String>) {}
}

object Registry {
    fun lookup(name: String): String = name
}
`, LangKotlin)

	assert.Equal(t, "com.example.orders", info.Package)

	require.Len(t, info.Imports, 2)
	assert.Equal(t, "java.time.Instant", info.Imports[0].Path)
	assert.True(t, info.Imports[1].Wildcard)

	require.Len(t, info.Types, 2)
	assert.Equal(t, "OrderService", info.Types[0].Name)
	assert.Equal(t, "Registry", info.Types[1].Name)

	var names []string
	for _, m := range info.Types[0].Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"constructor", "place"}, names)

	require.Len(t, info.Types[1].Methods, 1)
	assert.Equal(t, "lookup", info.Types[1].Methods[0].Name)
}

func TestInspectSyntaxError(t *testing.T) {
	info := inspect(t, `class Broken { void m( { }`, LangJava)
	assert.True(t, info.HasSyntaxError)
}

func TestInspectDefaultPackage(t *testing.T) {
	info := inspect(t, `class NoPackage {}`, LangJava)
	assert.Equal(t, "", info.Package)
	require.Len(t, info.Types, 1)
	assert.Equal(t, "NoPackage", info.Types[0].Name)
}

func TestInspectLineRanges(t *testing.T) {
	info := inspect(t, `class A {
    void m() {
    }
}
`, LangJava)

	require.Len(t, info.Types, 1)
	assert.Equal(t, uint32(1), info.Types[0].StartLine)
	assert.Equal(t, uint32(4), info.Types[0].EndLine)

	require.Len(t, info.Types[0].Methods, 1)
	assert.Equal(t, uint32(2), info.Types[0].Methods[0].StartLine)
	assert.Equal(t, uint32(3), info.Types[0].Methods[0].EndLine)
}
