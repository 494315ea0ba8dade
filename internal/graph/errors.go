package graph

import "fmt"

// User-facing validation messages. The product's clients are
// Vietnamese-language; these strings are shown verbatim.
const (
	errUserNotFound     = "Không tìm thấy người dùng"
	errInvalidPassword  = "Mật khẩu không hợp lệ"
	errMissingFields    = "Hãy điền đầy đủ thông tin"
	errFullNameTooLong  = "Họ và tên không quá 40 ký tự."
	errFullNameTooShort = "Họ và tên tối thiểu 4 ký tự."
	errInvalidEmail     = "Nhập địa chỉ email hợp lệ"
	errUsernameInvalid  = "Tên người dùng chỉ có thể sử dụng chữ cái, số, dấu gạch dưới và dấu chấm."
	errUsernameTooLong  = "Username no more than 20 characters."
	errUsernameTooShort = "Username min 3 characters."
	errUsernameReserved = "Tên người dùng không khả dụng. Vui lòng thử cái khác."
	errPasswordTooShort = "Mật khẩu tối thiểu 6 ký tự."
	errTokenInvalid     = "Mã thông báo này không hợp lệ hoặc đã hết hạn!"
	errPasswordRequired = "Nhập mật khẩu và Xác nhận mật khẩu."
	errPostEmpty        = "Hãy thêm tiêu đề hoặc hình ảnh."
	errPostNotFound     = "Không tìm thấy bài viết"
	errCommentRequired  = "Hãy nhập bình luận."

	msgSuccess = "Thành công"
)

func errDuplicateUser(field string) error {
	return inputError(fmt.Sprintf("Người dùng với %s đã cho đã tồn tại.", field))
}

func msgResetLinkSent(email string) string {
	return fmt.Sprintf("Một liên kết để thiết lập lại mật khẩu của bạn đã được gửi đến %s", email)
}

// InputError is a user-facing validation failure. Its message is returned
// to the client unchanged.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func inputError(message string) error { return &InputError{Message: message} }

// ErrUnauthenticated guards operations requiring a signed-in user.
var ErrUnauthenticated = fmt.Errorf("not authenticated")
