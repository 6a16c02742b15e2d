// Package documents holds the content-bearing entities shown by document
// tabs.
//
// A [Document] is a [TextDocument] or an [ImageDocument], each wrapping a
// [loader.Loader]. Documents live in a [Registry] and are referred to
// everywhere else by [DocumentKey]; a tab never holds a document directly.
// The [Opener] classifies paths by glob pattern, starts background loads and
// creates new documents on disk. All file access goes through an afero.Fs.
package documents
