// Package report prints the CSV-style header and row lines emitted by the
// GitHub reporting scripts. Each object kind (event, issue, pull, label,
// repository, user) has a fixed header and row shape; anything else is
// printed with its default formatting under an "itemName" header.
//
// Fields are not quoted or escaped. Label rows separate fields with a mix of
// ';' and ',' because descriptions routinely contain commas.
package report
