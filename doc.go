// SPDX-License-Identifier: EPL-2.0

// Package audsim compares two audio recordings and scores how similar they
// are, from 0 to 100, with a breakdown over four dimensions: timbre (MFCC),
// spectral shape, frequency distribution and temporal pattern.
//
// # Supported Formats
//
// The default registry decodes:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//
// The format is picked from the file extension and, when that is unknown,
// from the leading bytes of the input.
//
// # Quick Start
//
//	cmp, err := audsim.New(audsim.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	res, err := cmp.CompareFiles(ctx, "take1.wav", "take2.mp3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.SimilarityScore, res.Interpretation)
//
// # Pipeline
//
// Every input goes through the same stages:
//
//  1. Decode, mix to mono and resample to 22050 Hz (audio.Loader)
//  2. Peak normalize and trim leading and trailing silence (audio.Trim)
//  3. Extract MFCC, mel, spectral and PSD features (features.Extractor)
//
// The two inputs are processed concurrently. Their feature sets are then
// compared (similarity.Engine) and assembled into a report.Result, which
// marshals to JSON and can print itself as a console report.
//
// The stages are usable on their own: the subpackages expose the loader,
// extractor and engine with their configuration types.
package audsim
