// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package devid implements the device identifier pattern language.

A pattern is a device name template where bracketed ranges stand for families
of devices:

	GPU_SXM_[1-8]                               GPU_SXM_1 ... GPU_SXM_8
	NVSwitch_[0|0-3]/Ports/NVLink_[1|0-17]      4 switches x 18 ports
	HGX_GPU_SXM_[0|1-8]/PCIeDevices/GPU_SXM_[0|1-8]

Bracket grammar:

	bracket := "[" [ axis "|" ] range [ ":" range ] "]"
	range   := digits [ "-" digits ]

Every bracket is bound to an axis (argument position) of the compiled Pattern:
explicitly with the "axis|" prefix, or implicitly to its ordinal among all the
brackets of the pattern. Brackets sharing an axis always receive the same
argument. The optional ":" part remaps the bracket range, either pointwise
("1-4:2-5") or onto a single value ("0-3:7").

A Pattern is evaluated with an Index, enumerated with Domain and Values, and
inverted with Match. Comma-joined sub-ranges inside one bracket ("0-1:8,2-3:9")
are rejected with ErrMultipleSubRanges.

Two limits apply on top of the grammar: a range may hold at most MaxRangeSize
values ("[0-2000000]" fails with ErrInvalidRange), and an explicit axis may not
exceed MaxAxis ("[300|1]" fails with ErrInvalidAxis). Range bounds themselves
may be any non-negative int.
*/
package devid
