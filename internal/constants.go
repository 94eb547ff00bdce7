package internal

const (
	MaxPathLength    = 4096 // Maximum file path length accepted by the path resolver
	MaxDotPathLength = 5000 // Maximum length of a dot-notation lookup path
)
