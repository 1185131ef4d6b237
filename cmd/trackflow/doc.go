// Command trackflow tracks albums through the manual ten-stage mastering
// pipeline: it records per-album state, re-derives track-to-file mappings
// after external tools rename or regenerate files, and gates stage
// progression on the outputs each stage is expected to produce.
package main
