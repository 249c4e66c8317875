/*
Package qseries is a pure Go kernel for exact computations with q-series.
It provides arbitrary precision integers and rationals, truncated formal power series,
the classical q-products and theta functions, conversions between series and
infinite product forms (prodmake, etamake, jacprodmake), and relation finding
by exact linear algebra.
*/
package qseries
