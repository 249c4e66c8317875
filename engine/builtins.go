package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/convert"
	"github.com/tuneinsight/qseries/qfuncs"
	"github.com/tuneinsight/qseries/relations"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils"
	"github.com/tuneinsight/qseries/utils/bignum"
)

type builtin struct {
	arities []int
	usage   string
	doc     string
	fn      func(e *Engine, a args) (Result, error)
}

func (b builtin) accepts(n int) bool {
	return utils.IsInSlice(n, b.arities)
}

// Help returns the usage and description of the builtin name.
func Help(name string) (usage, doc string, ok bool) {
	b, ok := builtins[name]
	if !ok {
		return "", "", false
	}
	return b.usage, b.doc, true
}

// Names returns the names of all builtins in sorted order.
func Names() []string {
	return utils.GetSortedKeys(builtins)
}

func seriesResult(s series.Series, err error) (Result, error) {
	if err != nil {
		return nil, err
	}
	return SeriesResult{s}, nil
}

// qAndRest returns the q argument and the integer arguments of a builtin
// whose q argument may be omitted, as in etaq(k,T) and etaq(q,k,T).
func qAndRest(e *Engine, a args, n int) (series.Series, []int, error) {

	if len(a.vals) == n {
		ints, err := a.ints(utils.Range(0, n)...)
		return e.Q(), ints, err
	}

	q, err := a.series(0)
	if err != nil {
		return series.Series{}, nil, err
	}

	ints, err := a.ints(utils.Range(1, n+1)...)
	return q, ints, err
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{

		"aqprod": {[]int{4}, "aqprod(a,q,n,T)", "rising q-factorial (a;q)_n",
			func(e *Engine, a args) (Result, error) {
				x, err := a.series(0)
				if err != nil {
					return nil, err
				}
				q, err := a.series(1)
				if err != nil {
					return nil, err
				}
				ints, err := a.ints(2, 3)
				if err != nil {
					return nil, err
				}
				return SeriesResult{qfuncs.Aqprod(x, q, ints[0], ints[1])}, nil
			}},

		"etaq": {[]int{2, 3}, "etaq(k,T) or etaq(q,k,T)", "eta product prod_{n>=1} (1-q^{kn})",
			func(e *Engine, a args) (Result, error) {
				q, ints, err := qAndRest(e, a, 2)
				if err != nil {
					return nil, err
				}
				return seriesResult(e.cache.Etaq(q, ints[0], ints[1]))
			}},

		"theta2": thetaBuiltin("theta2", "theta_2 without its q^{1/4} prefactor", qfuncs.Theta2),
		"theta3": thetaBuiltin("theta3", "theta_3", qfuncs.Theta3),
		"theta4": thetaBuiltin("theta4", "theta_4", qfuncs.Theta4),

		"theta": {[]int{2, 3}, "theta(z,T) or theta(z,q,T)", "generalized theta function sum z^i q^{i^2}",
			func(e *Engine, a args) (Result, error) {
				z, err := a.series(0)
				if err != nil {
					return nil, err
				}
				q, T := e.Q(), 0
				if len(a.vals) == 3 {
					if q, err = a.series(1); err != nil {
						return nil, err
					}
				}
				if T, err = a.int(len(a.vals) - 1); err != nil {
					return nil, err
				}
				return seriesResult(qfuncs.Theta(z, q, T))
			}},

		"qbin": {[]int{3, 4}, "qbin(m,n,T) or qbin(q,m,n,T)", "Gaussian polynomial [n choose m]_q",
			func(e *Engine, a args) (Result, error) {
				q, ints, err := qAndRest(e, a, 3)
				if err != nil {
					return nil, err
				}
				return seriesResult(qfuncs.Qbin(q, ints[0], ints[1], ints[2]))
			}},

		"tripleprod": productBuiltin("tripleprod", "Jacobi triple product", qfuncs.Tripleprod),
		"quinprod":   productBuiltin("quinprod", "quintuple product", qfuncs.Quinprod),

		"winquist": {[]int{4}, "winquist(a,b,q,T)", "Winquist product",
			func(e *Engine, a args) (Result, error) {
				x, err := a.series(0)
				if err != nil {
					return nil, err
				}
				y, err := a.series(1)
				if err != nil {
					return nil, err
				}
				q, err := a.series(2)
				if err != nil {
					return nil, err
				}
				T, err := a.int(3)
				if err != nil {
					return nil, err
				}
				return seriesResult(qfuncs.Winquist(x, y, q, T))
			}},

		"eisenstein": {[]int{2}, "eisenstein(k,T)", "normalized Eisenstein series E_{2k}",
			func(e *Engine, a args) (Result, error) {
				ints, err := a.ints(0, 1)
				if err != nil {
					return nil, err
				}
				return seriesResult(qfuncs.Eisenstein(ints[0], ints[1]))
			}},

		"qdiff": {[]int{1}, "qdiff(f)", "q d/dq f",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				return SeriesResult{qfuncs.Qdiff(f)}, nil
			}},

		"sift": {[]int{4}, "sift(f,n,k,T)", "extract the coefficients a_{ni+k}",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				ints, err := a.ints(1, 2, 3)
				if err != nil {
					return nil, err
				}
				return seriesResult(convert.Sift(f, ints[0], ints[1], ints[2]))
			}},

		"T": {[]int{2, 3}, "T(r,n) or T(r,n,T)", "finite q-product T(r,n)",
			func(e *Engine, a args) (Result, error) {
				ints, err := a.ints(utils.Range(0, len(a.vals))...)
				if err != nil {
					return nil, err
				}
				T := a.trunc
				if len(ints) == 3 {
					T = ints[2]
				}
				return seriesResult(qfuncs.TRN(ints[0], ints[1], T))
			}},

		"prodmake": {[]int{2}, "prodmake(f,T)", "Andrews' algorithm: series to infinite product",
			seriesIntBuiltin(func(e *Engine, f series.Series, T int) (Result, error) {
				p, err := e.conv.Prodmake(f, T)
				if err != nil {
					return nil, err
				}
				return ProductResult{p}, nil
			})},

		"etamake": {[]int{2}, "etamake(f,T)", "identify f as q^m times an eta quotient",
			seriesIntBuiltin(func(e *Engine, f series.Series, T int) (Result, error) {
				eq, err := e.conv.Etamake(f, T)
				if err != nil {
					return nil, err
				}
				return EtaResult{eq}, nil
			})},

		"mprodmake": {[]int{2}, "mprodmake(f,T)", "identify f as prod (1+q^n)",
			seriesIntBuiltin(func(e *Engine, f series.Series, T int) (Result, error) {
				s, err := e.conv.Mprodmake(f, T)
				if err != nil {
					return nil, err
				}
				return MprodResult{s}, nil
			})},

		"checkprod": {[]int{2, 3}, "checkprod(f,T) or checkprod(f,M,T)", "check that the prodmake exponents are integers below M",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				M := convert.DefaultCheckprodBound
				if len(a.vals) == 3 {
					if M, err = a.int(1); err != nil {
						return nil, err
					}
				}
				T, err := a.int(len(a.vals) - 1)
				if err != nil {
					return nil, err
				}
				res, err := e.conv.Checkprod(f, M, T)
				if err != nil {
					return nil, err
				}
				return CheckprodResult{res}, nil
			}},

		"checkmult": {[]int{2, 3}, "checkmult(f,T) or checkmult(f,T,verbose)", "check that the coefficients are multiplicative",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				ints, err := a.ints(utils.Range(1, len(a.vals))...)
				if err != nil {
					return nil, err
				}
				verbose := len(ints) == 2 && ints[1] != 0
				return CheckmultResult{convert.Checkmult(f, ints[0], verbose)}, nil
			}},

		"jacprodmake": {[]int{2}, "jacprodmake(f,T)", "identify f as a Jacobi product",
			seriesIntBuiltin(func(e *Engine, f series.Series, T int) (Result, error) {
				jac, err := e.conv.Jacprodmake(f, T)
				if err != nil {
					return nil, err
				}
				return JacResult{jac}, nil
			})},

		"jac2series": {[]int{2}, "jac2series(jac,T)", "expand a Jacobi product",
			func(e *Engine, a args) (Result, error) {
				jac, err := a.jac(0)
				if err != nil {
					return nil, err
				}
				T, err := a.int(1)
				if err != nil {
					return nil, err
				}
				return seriesResult(convert.Jac2series(jac, T))
			}},

		"jac2prod": {[]int{1}, "jac2prod(jac)", "display a Jacobi product",
			func(e *Engine, a args) (Result, error) {
				jac, err := a.jac(0)
				if err != nil {
					return nil, err
				}
				return TextResult(convert.Jac2prod(jac)), nil
			}},

		"qfactor": {[]int{1, 2}, "qfactor(f) or qfactor(f,T)", "factor a finite q-product",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				T := a.trunc
				if len(a.vals) == 2 {
					if T, err = a.int(1); err != nil {
						return nil, err
					}
				}
				res, err := e.conv.Qfactor(f, T)
				if err != nil {
					return nil, err
				}
				return QFactorResult{res}, nil
			}},

		"subs_q": {[]int{2}, "subs_q(f,k)", "substitute q^k for q, k = 0 sums the coefficients",
			seriesIntBuiltin(func(e *Engine, f series.Series, k int) (Result, error) {
				return SeriesResult{f.SubsQ(k)}, nil
			})},

		"coeffs": {[]int{3}, "coeffs(f,from,to)", "list the coefficients of q^from, ..., q^to",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				ints, err := a.ints(1, 2)
				if err != nil {
					return nil, err
				}
				return ListResult(f.CoeffList(ints[0], ints[1])), nil
			}},

		"findhom": {[]int{3}, "findhom(L,n,topshift)", "homogeneous polynomial relations among the series of L",
			func(e *Engine, a args) (Result, error) {
				L, ints, err := listAndInts(a)
				if err != nil {
					return nil, err
				}
				return KernelResult{KernelResult: relations.Findhom(L, ints[0], ints[1])}, nil
			}},

		"findnonhom": {[]int{3}, "findnonhom(L,n,topshift)", "polynomial relations of degree at most n among the series of L",
			func(e *Engine, a args) (Result, error) {
				L, ints, err := listAndInts(a)
				if err != nil {
					return nil, err
				}
				return KernelResult{KernelResult: relations.Findnonhom(L, ints[0], ints[1])}, nil
			}},

		"findhomcombo": {[]int{4, 5}, "findhomcombo(f,L,n,topshift[,etaopt])", "express f as a homogeneous polynomial in L",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				L, err := a.seriesList(1)
				if err != nil {
					return nil, err
				}
				ints, err := a.ints(utils.Range(2, len(a.vals))...)
				if err != nil {
					return nil, err
				}
				return ComboResult{relations.Findhomcombo(f, L, ints[0], ints[1])}, nil
			}},

		"findnonhomcombo": {[]int{4, 5}, "findnonhomcombo(f,L,n_list,topshift[,etaopt])", "express f as a polynomial in L with bounded degrees",
			func(e *Engine, a args) (Result, error) {
				f, err := a.series(0)
				if err != nil {
					return nil, err
				}
				L, err := a.seriesList(1)
				if err != nil {
					return nil, err
				}
				bounds, err := a.intList(2)
				if err != nil {
					return nil, err
				}
				if len(bounds) != len(L) {
					return nil, errors.Wrapf(ErrArgType, "findnonhomcombo: %d degree bounds for %d series", len(bounds), len(L))
				}
				ints, err := a.ints(utils.Range(3, len(a.vals))...)
				if err != nil {
					return nil, err
				}
				return ComboResult{relations.Findnonhomcombo(f, L, bounds, ints[0])}, nil
			}},

		"findpoly": {[]int{4, 5}, "findpoly(x,y,deg1,deg2[,check])", "polynomial relation P(X,Y)=0 between two series",
			func(e *Engine, a args) (Result, error) {
				x, err := a.series(0)
				if err != nil {
					return nil, err
				}
				y, err := a.series(1)
				if err != nil {
					return nil, err
				}
				ints, err := a.ints(utils.Range(2, len(a.vals))...)
				if err != nil {
					return nil, err
				}
				check := 0
				if len(ints) == 3 {
					check = ints[2]
				}
				return KernelResult{
					KernelResult: relations.Findpoly(x, y, ints[0], ints[1], check),
					Names:        []string{"X", "Y"},
				}, nil
			}},

		"findmaxind": {[]int{2}, "findmaxind(L,topshift)", "maximal linearly independent subset of L",
			func(e *Engine, a args) (Result, error) {
				L, ints, err := listAndInts(a)
				if err != nil {
					return nil, err
				}
				return MaxindResult{relations.Findmaxind(L, ints[0])}, nil
			}},

		"legendre":  symbolBuiltin("legendre", "legendre(a,p)", "Legendre symbol (a/p)", qfuncs.Legendre),
		"jacobi":    symbolBuiltin("jacobi", "jacobi(a,n)", "Jacobi symbol (a/n)", qfuncs.Jacobi),
		"kronecker": symbolBuiltin("kronecker", "kronecker(a,n)", "Kronecker symbol (a/n)", qfuncs.Kronecker),

		"sigma": {[]int{1, 2}, "sigma(n) or sigma(n,k)", "divisor sum sigma_k(n)",
			func(e *Engine, a args) (Result, error) {
				ints, err := a.ints(utils.Range(0, len(a.vals))...)
				if err != nil {
					return nil, err
				}
				k := 1
				if len(ints) == 2 {
					k = ints[1]
				}
				return IntResult{qfuncs.Sigma(ints[0], k)}, nil
			}},

		"mobius": {[]int{1}, "mobius(n)", "Moebius function mu(n)",
			func(e *Engine, a args) (Result, error) {
				n, err := a.int(0)
				if err != nil {
					return nil, err
				}
				return IntResult{bignum.NewInt(int64(qfuncs.Mobius(n)))}, nil
			}},

		"euler_phi": {[]int{1}, "euler_phi(n)", "Euler totient phi(n)",
			func(e *Engine, a args) (Result, error) {
				n, err := a.int(0)
				if err != nil {
					return nil, err
				}
				return IntResult{bignum.NewInt(qfuncs.EulerPhi(n))}, nil
			}},

		"bernoulli": {[]int{1}, "bernoulli(n)", "Bernoulli number B_n",
			func(e *Engine, a args) (Result, error) {
				n, err := a.int(0)
				if err != nil {
					return nil, err
				}
				return FracResult{qfuncs.Bernoulli(n)}, nil
			}},

		"partitions": {[]int{1}, "partitions(n)", "number of partitions p(n)",
			func(e *Engine, a args) (Result, error) {
				n, err := a.int(0)
				if err != nil {
					return nil, err
				}
				if n < 0 {
					return IntResult{}, nil
				}
				return IntResult{qfuncs.Partitions(n + 1)[n]}, nil
			}},

		"set_trunc": {[]int{1}, "set_trunc(N)", "set the default truncation",
			func(e *Engine, a args) (Result, error) {
				n, err := a.int(0)
				if err != nil {
					return nil, err
				}
				if err := e.SetTrunc(n); err != nil {
					return nil, err
				}
				return NoneResult{}, nil
			}},
	}
}

func thetaBuiltin(name, doc string, theta func(q series.Series, T int) series.Series) builtin {
	return builtin{[]int{1, 2}, name + "(T) or " + name + "(q,T)", doc,
		func(e *Engine, a args) (Result, error) {
			q, ints, err := qAndRest(e, a, 1)
			if err != nil {
				return nil, err
			}
			return SeriesResult{theta(q, ints[0])}, nil
		}}
}

func productBuiltin(name, doc string, prod func(z, q series.Series, T int) (series.Series, error)) builtin {
	return builtin{[]int{3}, name + "(z,q,T)", doc,
		func(e *Engine, a args) (Result, error) {
			z, err := a.series(0)
			if err != nil {
				return nil, err
			}
			q, err := a.series(1)
			if err != nil {
				return nil, err
			}
			T, err := a.int(2)
			if err != nil {
				return nil, err
			}
			return seriesResult(prod(z, q, T))
		}}
}

func symbolBuiltin(name, usage, doc string, symbol func(a, n int64) int) builtin {
	return builtin{[]int{2}, usage, doc,
		func(e *Engine, a args) (Result, error) {
			x, err := a.int64(0)
			if err != nil {
				return nil, err
			}
			n, err := a.int64(1)
			if err != nil {
				return nil, err
			}
			return IntResult{bignum.NewInt(int64(symbol(x, n)))}, nil
		}}
}

// seriesIntBuiltin adapts a builtin taking a series and an integer.
func seriesIntBuiltin(fn func(e *Engine, f series.Series, n int) (Result, error)) func(e *Engine, a args) (Result, error) {
	return func(e *Engine, a args) (Result, error) {
		f, err := a.series(0)
		if err != nil {
			return nil, err
		}
		n, err := a.int(1)
		if err != nil {
			return nil, err
		}
		return fn(e, f, n)
	}
}

// listAndInts returns a leading list of series followed by integers.
func listAndInts(a args) ([]series.Series, []int, error) {
	L, err := a.seriesList(0)
	if err != nil {
		return nil, nil, err
	}
	ints, err := a.ints(utils.Range(1, len(a.vals))...)
	return L, ints, err
}
