package api

import (
	"bytes"
	"io"
	"net/http"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
	"github.com/etnz/goldbook/renderer"
	"github.com/etnz/goldbook/store"
	"github.com/labstack/echo/v4"
)

func (srv *Server) me(c echo.Context) error {
	u := c.Get(userKey).(goldbook.User)
	u.Password = ""
	return ok(c, http.StatusOK, "", u)
}

// live returns the latest live price, if any.
func (srv *Server) live() *goldbook.MarketData {
	if srv.prices == nil {
		return nil
	}
	md, found := srv.prices.Latest()
	if !found {
		return nil
	}
	return &md
}

// settings returns the stored settings and the ones in use.
func (srv *Server) settings(c echo.Context) (stored, active goldbook.Settings, err error) {
	stored, err = srv.store.Settings().Load(c.Request().Context())
	if err != nil {
		return stored, stored, err
	}
	return stored, stored.Active(srv.live()), nil
}

type prices struct {
	Source string               `json:"source"`
	Gold24 goldbook.Amount      `json:"gold24"`
	Gold21 goldbook.Amount      `json:"gold21"`
	Gold18 goldbook.Amount      `json:"gold18"`
	USD    goldbook.Amount      `json:"usd"`
	Advice goldbook.Trend       `json:"advice,omitempty"`
	Live   *goldbook.MarketData `json:"live,omitempty"`
}

func (srv *Server) getPrices(c echo.Context) error {
	stored, active, err := srv.settings(c)
	if err != nil {
		return err
	}
	p := prices{
		Source: string(goldbook.Manual),
		Gold24: active.GoldPrice24,
		Gold21: active.GoldPrice21,
		Gold18: active.GoldPrice18,
		USD:    active.ExchangeRate,
	}
	if live := srv.live(); live != nil {
		p.Live = live
		p.Advice = goldbook.Advice(live.Gold24, stored.GoldPrice24)
		if stored.PriceSource == goldbook.Live {
			p.Source = live.Source
		}
	}
	return ok(c, http.StatusOK, "", p)
}

func (srv *Server) refreshPrices(c echo.Context) error {
	if srv.prices == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "live prices are not configured")
	}
	md, err := srv.prices.Refresh(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "prices refreshed", md)
}

func (srv *Server) dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	_, active, err := srv.settings(c)
	if err != nil {
		return err
	}
	txs, err := srv.store.Transactions().List(ctx)
	if err != nil {
		return err
	}
	partners, err := srv.store.Partners().List(ctx)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", goldbook.NewDashboard(txs, partners, active))
}

func (srv *Server) listTransactions(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}
	txs, err := srv.store.Transactions().List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", goldbook.NewReport(txs, filter).Transactions)
}

func (srv *Server) addTransaction(c echo.Context) error {
	var o goldbook.Order
	if err := c.Bind(&o); err != nil {
		return badRequest(err)
	}
	_, active, err := srv.settings(c)
	if err != nil {
		return err
	}
	tx, err := o.Transaction(active.GoldPrice24)
	if err != nil {
		return err
	}
	tx, err = srv.store.Transactions().Add(c.Request().Context(), tx)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "transaction saved", tx)
}

func (srv *Server) getTransaction(c echo.Context) error {
	tx, err := srv.store.Transactions().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", tx)
}

func (srv *Server) printTransaction(c echo.Context) error {
	tx, err := srv.store.Transactions().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	stored, _, err := srv.settings(c)
	if err != nil {
		return err
	}
	return srv.printDocument(c, renderer.Transaction(tx, stored, srv.now()))
}

func (srv *Server) printDocument(c echo.Context, d *renderer.Document) error {
	if u, found := c.Get(userKey).(goldbook.User); found && d.Kind != goldbook.PermissionKind {
		d.User = u.Username
	}
	html, err := d.HTML()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

func (srv *Server) calc(c echo.Context) error {
	weight, err := goldbook.ParseAmount(c.QueryParam("weight"))
	if err != nil {
		return badRequest(err)
	}
	k, err := parseKarat(c.QueryParam("karat"))
	if err != nil {
		return badRequest(err)
	}
	manual := goldbook.Amount{}
	if p := c.QueryParam("price"); p != "" {
		if manual, err = goldbook.ParseAmount(p); err != nil {
			return badRequest(err)
		}
	}
	_, active, err := srv.settings(c)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", goldbook.Valuate(weight, k, active.GoldPrice24, manual))
}

func (srv *Server) getSettings(c echo.Context) error {
	stored, err := srv.store.Settings().Load(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", stored)
}

func (srv *Server) putSettings(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(err)
	}
	s, err := goldbook.DecodeSettings(body)
	if err != nil {
		return badRequest(err)
	}
	if err := srv.store.Settings().Save(c.Request().Context(), s); err != nil {
		return err
	}
	return ok(c, http.StatusOK, "settings saved", s)
}

func (srv *Server) report(c echo.Context) error {
	r, err := srv.newReport(c)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", r)
}

func (srv *Server) reportCSV(c echo.Context) error {
	r, err := srv.newReport(c)
	if err != nil {
		return err
	}
	header, rows := r.Table()
	var buf bytes.Buffer
	if err := goldbook.WriteCSV(&buf, header, rows); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+r.FileName(date.New(srv.now().Date()))+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (srv *Server) printReport(c echo.Context) error {
	r, err := srv.newReport(c)
	if err != nil {
		return err
	}
	stored, _, err := srv.settings(c)
	if err != nil {
		return err
	}
	return srv.printDocument(c, renderer.Report(r, stored, srv.now()))
}

func (srv *Server) newReport(c echo.Context) (*goldbook.Report, error) {
	filter, err := parseFilter(c)
	if err != nil {
		return nil, err
	}
	txs, err := srv.store.Transactions().List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return goldbook.NewReport(txs, filter), nil
}

func (srv *Server) profit(c echo.Context) error {
	txs, err := srv.store.Transactions().List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", goldbook.ComputeProfit(txs))
}

type sharesResponse struct {
	Shares  []goldbook.Share `json:"shares"`
	Capital goldbook.Amount  `json:"capital"`
	Net     goldbook.Amount  `json:"net"`
}

func (srv *Server) partnerShares(c echo.Context) error {
	ctx := c.Request().Context()
	txs, err := srv.store.Transactions().List(ctx)
	if err != nil {
		return err
	}
	partners, err := srv.store.Partners().List(ctx)
	if err != nil {
		return err
	}
	net := goldbook.ComputeProfit(txs).Net
	shares, capital := goldbook.PartnerShares(partners, net)
	return ok(c, http.StatusOK, "", sharesResponse{shares, capital, net})
}

func (srv *Server) exportBackup(c echo.Context) error {
	data, err := srv.store.ExportJSON(c.Request().Context())
	if err != nil {
		return err
	}
	name := store.BackupFileName(date.New(srv.now().Date()))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.JSONBlob(http.StatusOK, data)
}

func (srv *Server) importBackup(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(err)
	}
	restored, err := srv.store.ImportJSON(c.Request().Context(), body)
	if err != nil {
		return badRequest(err)
	}
	return ok(c, http.StatusOK, "backup restored", restored)
}

func (srv *Server) clearTransactions(c echo.Context) error {
	if err := srv.store.Transactions().Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
