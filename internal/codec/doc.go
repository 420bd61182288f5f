// Package codec defines the decoder/encoder contract shared by the
// backend store formats. Each backend (GTK, KDE, Qt) has its own codec
// implementation in a subpackage that knows how to translate that
// store's on-disk text to and from the canonical bookmark model.
package codec
