// Package model defines record descriptors: the ordered field metadata and
// the registered member table (attribute getters and zero-argument methods)
// that the view and resolver layers probe instead of reflecting over record
// instances at request time.
package model
