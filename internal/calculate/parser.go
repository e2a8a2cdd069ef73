package calculate

import "fmt"

// Evaluate вычисляет арифметическое выражение и возвращает целочисленный результат.
// Поддерживаются целые числа, операции + - * /, унарный минус и скобки со
// стандартным приоритетом операций. Деление целочисленное, с усечением к нулю.
// Переполнение машинного int не проверяется.
func Evaluate(expression string) (int, error) {
	return evaluate(expression, false)
}

// EvaluateStrict работает как Evaluate, но в строгом режиме: фактор, который не
// начинается с цифры, минуса или скобки, и незакрытая скобка становятся ошибками
// вместо того, чтобы молча давать ноль.
func EvaluateStrict(expression string) (int, error) {
	return evaluate(expression, true)
}

func evaluate(expression string, strict bool) (int, error) {
	if expression == "" {
		return 0, InvalidExpressionError("empty expression")
	}

	// Проверяем наличие недопустимых символов до начала разбора
	if err := validate(expression); err != nil {
		return 0, err
	}

	p := &parser{expr: expression, strict: strict}
	return p.parseExpression()
}

// validate проверяет, что выражение состоит только из допустимых символов.
// Останавливается на первом недопустимом символе.
func validate(expression string) error {
	for i := 0; i < len(expression); i++ {
		if !isValidChar(expression[i]) {
			return InvalidCharacterError(expression[i], i)
		}
	}
	return nil
}

func isValidChar(c byte) bool {
	return c == '(' || c == ')' || c == '+' || c == '-' ||
		c == '*' || c == '/' || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parser хранит выражение и текущую позицию разбора. Грамматика вычисляется
// рекурсивным спуском без построения дерева: каждый уровень сразу возвращает
// готовое значение. Один parser живет в пределах одного вызова Evaluate.
type parser struct {
	expr   string
	pos    int
	strict bool
}

// peek возвращает текущий символ или 0 в конце выражения
func (p *parser) peek() byte {
	if p.pos >= len(p.expr) {
		return 0
	}
	return p.expr[p.pos]
}

// parseExpression вычисляет цепочку термов, соединённых + и -,
// слева направо. Это входная точка грамматики: с неё начинается и всё
// выражение целиком, и каждое подвыражение в скобках.
func (p *parser) parseExpression() (int, error) {
	result, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for p.peek() == '+' || p.peek() == '-' {
		op := p.expr[p.pos]
		p.pos++

		operand, err := p.parseTerm()
		if err != nil {
			return 0, err
		}

		if op == '+' {
			result += operand
		} else {
			result -= operand
		}
	}
	return result, nil
}

// parseTerm вычисляет цепочку факторов, соединённых * и /, слева направо.
// Деление на ноль прерывает вычисление ошибкой.
func (p *parser) parseTerm() (int, error) {
	result, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for p.peek() == '*' || p.peek() == '/' {
		op := p.expr[p.pos]
		p.pos++

		operand, err := p.parseFactor()
		if err != nil {
			return 0, err
		}

		if op == '*' {
			result *= operand
		} else {
			if operand == 0 {
				return 0, DivisionByZeroError()
			}
			result /= operand
		}
	}
	return result, nil
}

// parseFactor вычисляет наименьшую единицу грамматики: число со знаком или
// подвыражение в скобках. Поддерживается один ведущий минус; --3 не
// сворачивается в 3.
func (p *parser) parseFactor() (int, error) {
	sign := 1
	if p.peek() == '-' {
		sign = -1
		p.pos++
	}

	if p.peek() == '(' {
		p.pos++

		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}

		// Закрывающий символ съедается без проверки: несбалансированные
		// скобки допускаются. В строгом режиме отсутствие ')' считается ошибкой.
		if p.strict && p.peek() != ')' {
			return 0, MalformedGroupingError(p.pos)
		}
		if p.pos < len(p.expr) {
			p.pos++
		}
		return sign * value, nil
	}

	if !isDigit(p.peek()) {
		// Фактор без единой цифры даёт ноль, позиция не сдвигается.
		if p.strict {
			return 0, InvalidExpressionError(fmt.Sprintf("expected a number at position %d", p.pos))
		}
		return 0, nil
	}

	value := 0
	for isDigit(p.peek()) {
		value = value*10 + int(p.expr[p.pos]-'0')
		p.pos++
	}
	return sign * value, nil
}
