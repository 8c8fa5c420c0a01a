package mail

import "html/template"

// The HTML bodies are right-to-left Persian, same as the product UI.

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="fa">
<body style="font-family: Tahoma, Arial, sans-serif; direction: rtl;">
  <h2>سلام {{.FirstName}} عزیز،</h2>
  <p>از ثبت‌نام شما در <strong>Okayr</strong> بسیار خوشحالیم! 🎉</p>
  <p>اطلاعات شما با موفقیت ثبت شد. حساب کاربری شما در حال بررسی است و به زودی فعال خواهد شد.</p>
  <p><a href="{{.LoginURL}}">ورود به سیستم</a></p>
  <p>با احترام،<br>تیم Okayr</p>
</body>
</html>`))

var adminNewUserTmpl = template.Must(template.New("adminNewUser").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="fa">
<body style="font-family: Tahoma, Arial, sans-serif; direction: rtl;">
  <h2>کاربر جدید ثبت‌نام کرد</h2>
  <table>
    <tr><td>نام:</td><td>{{.FirstName}}</td></tr>
    <tr><td>نام خانوادگی:</td><td>{{.LastName}}</td></tr>
    <tr><td>ایمیل:</td><td>{{.Email}}</td></tr>
    <tr><td>نام کاربری:</td><td>{{.Username}}</td></tr>
    <tr><td>موبایل:</td><td>{{if .Mobile}}{{.Mobile}}{{else}}وارد نشده{{end}}</td></tr>
  </table>
  <p>برای بررسی و فعال‌سازی حساب کاربر، وارد <a href="{{.AdminURL}}">پنل مدیریت</a> شوید.</p>
</body>
</html>`))

var activatedTmpl = template.Must(template.New("activated").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="fa">
<body style="font-family: Tahoma, Arial, sans-serif; direction: rtl;">
  <h2>تبریک {{.FirstName}} عزیز! 🎊</h2>
  <p>حساب کاربری شما در <strong>Okayr</strong> با موفقیت فعال شد.</p>
  <p><a href="{{.LoginURL}}">ورود به Okayr</a></p>
  <p>با آرزوی موفقیت،<br>تیم Okayr</p>
</body>
</html>`))

var deactivatedTmpl = template.Must(template.New("deactivated").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="fa">
<body style="font-family: Tahoma, Arial, sans-serif; direction: rtl;">
  <h2>سلام {{.FirstName}} عزیز،</h2>
  <p>حساب کاربری شما در <strong>Okayr</strong> به حالت غیرفعال درآمده است.</p>
  <p>اگر فکر می‌کنید این اتفاق به اشتباه افتاده، لطفاً با پشتیبانی تماس بگیرید.</p>
  <p>با احترام،<br>تیم Okayr</p>
</body>
</html>`))
