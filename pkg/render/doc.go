// Package render formats diary entries as HTML and places them into a page template.
//
// Entries are grouped by calendar date in the display timezone:
//
//	<p><strong>15/01/2024</strong></p>
//	<article><p class='post-time'>10:00 AM</p><p>text</p></article>
//	<hr>
//	<p><strong>14/01/2024</strong></p>
//	...
//
// The joined blocks replace the literal {{posts}} token of the template.
// Entry text is inserted as is, without escaping.
package render
