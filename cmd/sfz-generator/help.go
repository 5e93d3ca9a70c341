package main

// formatHelp documents the YAML definition schema, printed by -y.
const formatHelp = `
--------------------------------------------------------------------
Global settings:

	output - output file name without extension.
	name - instrument name used in comment decoration.
	comment - dictionary of arbitrary values written as comments.

	volume - added to layer volumes.
	attack - default 0.004
	release - default 0.3
	exponent - velocity exponent, applied to even distribution of
	           transitions from 0-1 (0-127). Default 0.6.
	min - minimum index. Notes outside range are ignored. No default.
	max - maximum index. No default.
	octave - octave offset applied to all note indices.
	transpose - semitone offset applied to all note indices.
	middleC - index of middle C for indexed naming. Default 60.
	stride - index step. Default 1.

	crossfade - crossfade based on key.
	unpitched - don't vary pitch based on key.
	invertDynamics - invert order of dynamics.
	exact - won't extend note key ranges.
	skipAnalysis - don't analyze any soundwaves. Equal to -force.

	knobs - create Attack, Release and Release Volume controls,
	        and allow per-layer knobs.

	sustain - single layer element, see Layer settings.
	# or
	layers:   # dictionary of layers
	  a:
	    ...
	  release:
	    ...

	# Editing - filter, sub, split, map - see Layer settings.

--------------------------------------------------------------------
Layer settings:

	source - path to source folder.

	# Additive to global:
	volume
	octave
	transpose

	# Replacements:
	attack
	release
	min
	max
	middleC
	stride
	exponent

	# Governed by global:
	crossfade
	unpitched
	invertDynamics
	exact
	skipAnalysis - don't analyze soundwaves for layer. The only switch
	               a layer may enable on its own.

	isRelease - release layer. Can just be named "release" for same effect.
	alwaysRelease - triggered on note up regardless of sustain pedal.

	onekey - only one note on given layer. Doesn't need an identifiable
	         index. Can have RRs.

	knob - create volume knob. Labeled based on layer name.
	knobPercent - default value of knob. 0-100 integer.

	# Editing in sequence (individually preceded by global equivalents):
	filter - regex. Only matches (anywhere in filename) get processed
	         further. Case sensitive.
	sub - list of from-to regexes. Applied to whole filename. Case
	      sensitive.
	split - regex. Splits filename into chunks. Case sensitive.
	map - dictionary of key-replacement elements. Applied to split chunks
	      of filenames. Case INsensitive.
--------------------------------------------------------------------
`
