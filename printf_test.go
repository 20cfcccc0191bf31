package main

import "testing"

func TestPrintfVerbatim(t *testing.T) {
	// A format string without conversions is emitted as-is, plus the one
	// trailing newline every printf invocation carries.
	itTest("verbatim").withLL(`
@.str = private unnamed_addr constant [4 x i8] c"abc\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([4 x i8], [4 x i8]* @.str, i64 0, i64 0))
	ret i32 0
}
`).expectOutput("abc\n").run(t)
}

func TestPrintfString(t *testing.T) {
	itTest("%s renders a literal without its terminator").withLL(`
@.str = private unnamed_addr constant [7 x i8] c"got %s\00"
@.str.1 = private unnamed_addr constant [6 x i8] c"odds\0A\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([7 x i8], [7 x i8]* @.str, i64 0, i64 0), i8* getelementptr inbounds ([6 x i8], [6 x i8]* @.str.1, i64 0, i64 0))
	ret i32 0
}
`).expectOutput("got odds\n\n").run(t)
}

func TestPrintfConstantArgs(t *testing.T) {
	// Immediate arguments render without ever touching a register.
	itTest("constant arguments").withLL(`
@.str = private unnamed_addr constant [6 x i8] c"%d %d\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([6 x i8], [6 x i8]* @.str, i64 0, i64 0), i32 -7, i64 9000000000)
	ret i32 0
}
`).expectOutput("-7 9000000000\n").run(t)
}

func TestPrintfErrors(t *testing.T) {
	interpTestCases{
		itTest("dangling percent").withLL(`
@.str = private unnamed_addr constant [4 x i8] c"hi%\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([4 x i8], [4 x i8]* @.str, i64 0, i64 0))
	ret i32 0
}
`).expectErrorContains("dangling %"),

		itTest("unsupported conversion").withLL(`
@.str = private unnamed_addr constant [3 x i8] c"%x\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.str, i64 0, i64 0), i32 7)
	ret i32 0
}
`).expectErrorContains("unsupported conversion %x"),

		itTest("exhausted arguments").withLL(`
@.str = private unnamed_addr constant [3 x i8] c"%d\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.str, i64 0, i64 0))
	ret i32 0
}
`).expectErrorContains("not enough arguments"),

		itTest("non-literal string argument").withLL(`
@.str = private unnamed_addr constant [3 x i8] c"%s\00"
@word = private unnamed_addr constant [3 x i8] c"hi\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.str, i64 0, i64 0), i8* getelementptr inbounds ([3 x i8], [3 x i8]* @word, i64 0, i64 0))
	ret i32 0
}
`).expectErrorContains("not a string literal"),
	}.run(t)
}

func TestPrintfI64AndFloat(t *testing.T) {
	itTest("typed rendering").withLL(`
@.str = private unnamed_addr constant [9 x i8] c"%d %f %f\00"

declare i32 @printf(i8*, ...)

define i32 @main() {
entry:
	%x = alloca i64
	store i64 -42, i64* %x
	%0 = load i64, i64* %x
	%call = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([9 x i8], [9 x i8]* @.str, i64 0, i64 0), i64 %0, double 0x3FE8000000000000, float 2.5)
	ret i32 0
}
`).expectOutput("-42 0.75 2.5\n").run(t)
}
