// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package tntc provides static checking for modules of a temporal specification language:
// inference of polymorphic types with row-polymorphic records, inference of the state effects of
// each definition, and checking of the declared mode of each definition against its effects.
//
// The type-system is an extension of Hindley-Milner. Records are typed with rows which may be
// left open for extension by a row-variable; operators which access a field accept any record
// which contains the field.
//
// Supported Features:
//
//   - Let-polymorphism for top-level and nested operator definitions
//   - Row-polymorphic records, tuples, discriminated unions of records
//   - Transparent type aliases and uninterpreted types
//   - Type annotations with named type-variables
//   - Effect inference over the reads, updates, and temporal use of state variables
//   - Mode checking with a configurable policy
//
// Links:
//
// Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
package tntc
