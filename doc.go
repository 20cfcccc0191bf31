/* Command bcwalk interprets LLVM bitcode by walking it.

Given a module compiled with `clang -emit-llvm -c` (or its textual `-S`
form), bcwalk materialises the in-memory IR, seeds a frame for main's entry
block, and executes the instruction stream directly: no translation, no JIT,
no native stack. Calls and returns travel over an explicit call stack of
saved register files and resume coordinates, so the driver loop is iterative
and uniform.

The covered guest subset is what clang emits for simple C programs: i32/i64
arithmetic (i1/i8 flow through comparisons and extensions), float and double
arithmetic, sext/zext/fpext, icmp, alloca/store/load over named locals,
direct calls, the ret/br/condbr/switch terminators, and string literals as
`.str` global byte arrays. The only external symbol honoured is printf, with
a minimal renderer that always terminates its output with a newline.

Locals are deliberately modelled as register rebinds rather than addressable
memory: the subset generates no pointer arithmetic into locals, so
alloca/store/load collapse onto a single register name. Anything outside the
subset halts interpretation with an unsupported-construct error.
*/
package main
