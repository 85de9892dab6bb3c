// Package dataio provides the VolumeReader/VolumeWriter interfaces spec
// §6 describes for 4D volumetric timeseries I/O, plus a minimal flat
// float32 raw-volume codec sufficient to exercise the core end-to-end.
// Real NIfTI-1 header parsing is out of scope; a future implementation
// can satisfy the same interfaces without touching vb/spatialvb.
package dataio
