// Copyright 2024 The diagrender Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package diagrender renders compiler-style diagnostics with underlined
source annotations, à la rustc or the Go compiler's carets.

A [Diagnostic] carries a severity, a message, zero or more [Annotation]s
(each an underlined byte range in some source file), and trailing [Note]s.
Diagnostics are collected into a [Report] and rendered with [Render] to
anything implementing [StyleSink], using a caller-supplied [FileDatabase]
to resolve byte offsets into lines and columns.

The hard part of this package is laying out multiple, possibly
overlapping, possibly multi-line annotations on the same block of source
without their underlines, vertical bars, and connectors visually
colliding; see the package-internal line layout core for that algorithm.

# Diagnostic style

Diagnostics built with this package are expected to follow a few rules,
adapted from rustc's diagnostic style guide:

 1. Errors are for conditions that make the input invalid. Warnings are
    for things that are allowed but probably wrong. Notes add factual
    context; help suggests a fix; debug output is never shown to normal
    users.
 2. Messages are plain, friendly, and do not begin with a capital letter
    or end in punctuation. Avoid "illegal"; prefer "invalid" or "not
    allowed".
 3. The primary annotation should point at exactly the offending code,
    not a whole enclosing construct.
*/
package diagrender
