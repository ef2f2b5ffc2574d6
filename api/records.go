package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/date"
	"github.com/etnz/goldbook/renderer"
	"github.com/labstack/echo/v4"
)

// parseFilter reads the type, from, to and period query parameters. A period
// selects the daily, weekly, monthly or yearly range around from, or today.
func parseFilter(c echo.Context) (goldbook.ReportFilter, error) {
	var f goldbook.ReportFilter
	if t := c.QueryParam("type"); t != "" && t != "ALL" {
		typ, err := goldbook.ParseTxType(t)
		if err != nil {
			return f, badRequest(err)
		}
		f.Type = typ
	}
	var err error
	if from := c.QueryParam("from"); from != "" {
		if f.Span.From, err = date.Parse(from); err != nil {
			return f, badRequest(err)
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if f.Span.To, err = date.Parse(to); err != nil {
			return f, badRequest(err)
		}
	}
	if p := c.QueryParam("period"); p != "" {
		period, err := date.ParsePeriod(p)
		if err != nil {
			return f, badRequest(err)
		}
		on := f.Span.From
		if on.IsZero() {
			on = date.Today()
		}
		f.Span = date.NewRange(on, period)
	}
	return f, nil
}

func parseKarat(s string) (goldbook.Karat, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid karat %q", s)
	}
	k := goldbook.Karat(n)
	if !k.Valid() {
		return 0, fmt.Errorf("karat %d out of 1..1000", n)
	}
	return k, nil
}

func (srv *Server) listEmployees(c echo.Context) error {
	list, err := srv.store.Employees().List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", list)
}

func (srv *Server) addEmployee(c echo.Context) error {
	var e goldbook.Employee
	if err := c.Bind(&e); err != nil {
		return badRequest(err)
	}
	e, err := srv.store.Employees().Add(c.Request().Context(), e)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "employee added", e)
}

func (srv *Server) updateEmployee(c echo.Context) error {
	var e goldbook.Employee
	if err := c.Bind(&e); err != nil {
		return badRequest(err)
	}
	e.ID = c.Param("id")
	if err := srv.store.Employees().Update(c.Request().Context(), e); err != nil {
		return err
	}
	return ok(c, http.StatusOK, "employee updated", e)
}

func (srv *Server) deleteEmployee(c echo.Context) error {
	if err := srv.store.Employees().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (srv *Server) listPartners(c echo.Context) error {
	list, err := srv.store.Partners().List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", list)
}

func (srv *Server) addPartner(c echo.Context) error {
	var p goldbook.Partner
	if err := c.Bind(&p); err != nil {
		return badRequest(err)
	}
	p, err := srv.store.Partners().Add(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "partner added", p)
}

func (srv *Server) updatePartner(c echo.Context) error {
	var p goldbook.Partner
	if err := c.Bind(&p); err != nil {
		return badRequest(err)
	}
	p.ID = c.Param("id")
	if err := srv.store.Partners().Update(c.Request().Context(), p); err != nil {
		return err
	}
	return ok(c, http.StatusOK, "partner updated", p)
}

func (srv *Server) deletePartner(c echo.Context) error {
	if err := srv.store.Partners().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (srv *Server) listPermissions(c echo.Context) error {
	list, err := srv.store.Permissions().List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "", list)
}

func (srv *Server) addPermission(c echo.Context) error {
	var p goldbook.Permission
	if err := c.Bind(&p); err != nil {
		return badRequest(err)
	}
	if p.Date.IsZero() {
		p.Date = date.New(srv.now().Date())
	}
	p, err := srv.store.Permissions().Add(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "permission added", p)
}

func (srv *Server) togglePermission(c echo.Context) error {
	p, err := srv.store.Permissions().Toggle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "permission updated", p)
}

func (srv *Server) deletePermission(c echo.Context) error {
	if err := srv.store.Permissions().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (srv *Server) printPermission(c echo.Context) error {
	p, err := srv.store.Permissions().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	stored, _, err := srv.settings(c)
	if err != nil {
		return err
	}
	return srv.printDocument(c, renderer.Permission(p, stored, srv.now()))
}

func (srv *Server) listUsers(c echo.Context) error {
	list, err := srv.store.Users().List(c.Request().Context())
	if err != nil {
		return err
	}
	for i := range list {
		list[i].Password = ""
	}
	return ok(c, http.StatusOK, "", list)
}

func (srv *Server) addUser(c echo.Context) error {
	var u goldbook.User
	if err := c.Bind(&u); err != nil {
		return badRequest(err)
	}
	u, err := srv.store.Users().Add(c.Request().Context(), u)
	if err != nil {
		return err
	}
	u.Password = ""
	return ok(c, http.StatusCreated, "user added", u)
}

// updateUser keeps the stored password when none is sent.
func (srv *Server) updateUser(c echo.Context) error {
	var u goldbook.User
	if err := c.Bind(&u); err != nil {
		return badRequest(err)
	}
	ctx := c.Request().Context()
	old, err := srv.store.Users().Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	u.ID, u.LastLogin = old.ID, old.LastLogin
	if u.Password == "" {
		u.Password = old.Password
	}
	if err := srv.store.Users().Update(ctx, u); err != nil {
		return err
	}
	u.Password = ""
	return ok(c, http.StatusOK, "user updated", u)
}

func (srv *Server) deleteUser(c echo.Context) error {
	if err := srv.store.Users().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
