package bot

const (
	msgWelcome            = "Привет! Я бот ветеринарной клиники. Давайте запишем вашего питомца на прием.\nПожалуйста, введите ваше имя:"
	msgAskFirstName       = "Пожалуйста, введите ваше имя:"
	msgAskLastName        = "Спасибо! Теперь введите вашу фамилию:"
	msgAskContact         = "Пожалуйста, нажмите кнопку 'Поделиться контактом', чтобы мы могли использовать ваш номер телефона."
	msgContactOnly        = "Не надо ничего вводить, просто нажмите кнопку 'Поделиться контактом'."
	msgRegistered         = "Пользователь успешно зарегистрирован!"
	msgRegistrationFailed = "Произошла ошибка при регистрации пользователя."
	msgWelcomeBack        = "С возвращением!"
	msgChooseAnimalType   = "Для записи на прием укажите тип животного из предложенного:"
	msgUnknownAnimalType  = "Такого типа животного нет в списке. Выберите, пожалуйста, кнопкой."
	msgNoAnimalTypes      = "К сожалению, сейчас клиника не принимает записи."
	msgChooseSlot         = "Выберите свободный слот для записи на прием:"
	msgNoSlots            = "К сожалению, на ближайшую неделю свободных слотов нет. Попробуйте позже: /start"
	msgBookingFailed      = "Произошла ошибка при записи на прием."
	msgBooked             = "Вы успешно записались на прием на %s! Мы позаботимся о Вашем питомце <3. С Вами скоро свяжутся для уточнения деталей."
	msgServiceUnavailable = "К сожалению, сервис временно не доступен."
	msgUseStart           = "Чтобы записаться на прием, отправьте /start"
	msgCancelled          = "Запись отменена. Чтобы начать заново, отправьте /start"
	msgShareContactButton = "Поделиться контактом"
	cmdStart              = "/start"
	cmdCancel             = "/cancel"
)
