// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a multi-task
// training configuration. Its core purpose is to hold a strongly-typed,
// fully-resolved view of the user's task declarations.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - TaskDefinition: one learnable objective. It binds a predicted property
//     of a molecular system to a loss specification, an output tensor spec,
//     an optional normalizer, optional per-element reference corrections, the
//     datasets it is evaluated against, and the metrics computed for it.
//
//   - DatasetManifest: the set of distinct chemical elements present in a
//     dataset. Manifests are what make per-element reference tables
//     checkable: a table must supply exactly one value per distinct element
//     across the task's datasets.
//
//   - LossSpec / OutSpec / Normalizer / ElementRefs: the typed fragments a
//     TaskDefinition is assembled from.
//
// Why a separate model package?
//
// Declarations arrive as free-form documents (HCL or YAML) full of symbolic
// references. This package is the layer those documents are resolved INTO:
// every field here is a concrete Go value, every enumeration is closed, and
// every type knows how to validate itself. The registry builder composes
// these validations into its all-or-nothing build; once built, values in
// this package are never mutated, which is what makes the registry safe to
// share across data-loading workers without synchronization.
package model
